package domain

// Currency is one of the two currencies the fund operates in.
type Currency string

const (
	CurrencyCRC Currency = "CRC"
	CurrencyUSD Currency = "USD"
)

// Currencies returns the supported currencies in stable order.
func Currencies() []Currency {
	return []Currency{CurrencyCRC, CurrencyUSD}
}

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool {
	return c == CurrencyCRC || c == CurrencyUSD
}

// FundAccount identifies one of the fixed cash/bank accounts of a company.
type FundAccount string

const (
	AccountGeneralFund FundAccount = "general_fund"
	AccountBankA       FundAccount = "bank_a"
	AccountBankB       FundAccount = "bank_b"
	AccountBankC       FundAccount = "bank_c"
)

var accountLabels = map[FundAccount]string{
	AccountGeneralFund: "Fondo General",
	AccountBankA:       "Banco A",
	AccountBankB:       "Banco B",
	AccountBankC:       "Banco C",
}

// FundAccounts returns all accounts in stable order.
func FundAccounts() []FundAccount {
	return []FundAccount{AccountGeneralFund, AccountBankA, AccountBankB, AccountBankC}
}

// Valid reports whether a names a known account.
func (a FundAccount) Valid() bool {
	_, ok := accountLabels[a]
	return ok
}

// Label returns the display label for the account.
func (a FundAccount) Label() string {
	if label, ok := accountLabels[a]; ok {
		return label
	}
	return string(a)
}
