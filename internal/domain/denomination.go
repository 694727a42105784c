package domain

import "github.com/shopspring/decimal"

// Breakdown maps a denomination (its face value as a decimal string, e.g.
// "10000" or "0.25") to the number of physical pieces counted.
type Breakdown map[string]int

var denominationFaces = map[Currency][]string{
	CurrencyCRC: {"5", "10", "25", "50", "100", "500", "1000", "2000", "5000", "10000", "20000", "50000"},
	CurrencyUSD: {"0.01", "0.05", "0.10", "0.25", "0.50", "1", "2", "5", "10", "20", "50", "100"},
}

var faceValues = buildFaceValues()

func buildFaceValues() map[Currency]map[string]decimal.Decimal {
	m := make(map[Currency]map[string]decimal.Decimal, len(denominationFaces))
	for currency, faces := range denominationFaces {
		byFace := make(map[string]decimal.Decimal, len(faces))
		for _, face := range faces {
			byFace[face] = decimal.RequireFromString(face)
		}
		m[currency] = byFace
	}
	return m
}

// Denominations returns the valid denominations for a currency, smallest first.
func Denominations(currency Currency) []string {
	return denominationFaces[currency]
}

// FaceValue returns the monetary value of one piece of the denomination.
func FaceValue(currency Currency, denomination string) (decimal.Decimal, error) {
	value, ok := faceValues[currency][denomination]
	if !ok {
		return decimal.Zero, NewValidationError("breakdown", denomination, "denomination", "unknown denomination for "+string(currency))
	}
	return value, nil
}

// Total computes the counted total: sum of count times face value.
func (b Breakdown) Total(currency Currency) (decimal.Decimal, error) {
	total := decimal.Zero
	for denomination, count := range b {
		if count < 0 {
			return decimal.Zero, NewValidationError("breakdown", denomination, "count", "count cannot be negative")
		}
		face, err := FaceValue(currency, denomination)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(face.Mul(decimal.NewFromInt(int64(count))))
	}
	return total, nil
}
