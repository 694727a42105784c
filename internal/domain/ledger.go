package domain

import "github.com/shopspring/decimal"

// SignedAmount returns the entry's contribution to the running balance:
// ingreso entries add their income, gasto/egreso entries subtract their
// expense.
func SignedAmount(entry *MovementEntry, classifier *Classifier) decimal.Decimal {
	if classifier.Classify(entry) == ClassificationIngreso {
		return entry.AmountIncome
	}
	return entry.AmountExpense.Neg()
}

// ComputeBalance folds entries into a per-currency running balance. Entries
// must already be ordered; the caller fixes same-day ties by (created_at, id)
// ascending.
func ComputeBalance(entries []*MovementEntry, classifier *Classifier) MoneyByCurrency {
	balance := MoneyByCurrency{}
	for _, currency := range Currencies() {
		balance[currency] = decimal.Zero
	}
	for _, entry := range entries {
		balance[entry.Currency] = balance[entry.Currency].Add(SignedAmount(entry, classifier))
	}
	return balance
}
