package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SummaryBucket accumulates per-classification totals for one currency.
type SummaryBucket struct {
	Ingreso decimal.Decimal
	Gasto   decimal.Decimal
	Egreso  decimal.Decimal
}

func (b SummaryBucket) add(other SummaryBucket) SummaryBucket {
	return SummaryBucket{
		Ingreso: b.Ingreso.Add(other.Ingreso),
		Gasto:   b.Gasto.Add(other.Gasto),
		Egreso:  b.Egreso.Add(other.Egreso),
	}
}

// Net returns ingreso minus gasto minus egreso.
func (b SummaryBucket) Net() decimal.Decimal {
	return b.Ingreso.Sub(b.Gasto).Sub(b.Egreso)
}

// SummaryRow is the aggregate for one movement type.
type SummaryRow struct {
	MovementTypeID string
	Label          string
	Classification Classification
	Totals         map[Currency]SummaryBucket
}

// SummaryTotals is the grand total across all rows.
type SummaryTotals struct {
	ByCurrency map[Currency]SummaryBucket
	NetBalance map[Currency]decimal.Decimal
}

// Summary is the result of an aggregation run.
type Summary struct {
	Rows   []*SummaryRow
	Totals SummaryTotals
}

// SummaryColumn selects an explicit sort column.
type SummaryColumn string

const (
	SummaryColumnDefault        SummaryColumn = ""
	SummaryColumnLabel          SummaryColumn = "label"
	SummaryColumnClassification SummaryColumn = "classification"
	SummaryColumnNet            SummaryColumn = "net"
)

// SortDirection orders a sort column.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// SummaryOptions filters and orders an aggregation run.
type SummaryOptions struct {
	From time.Time
	To   time.Time

	// Classification, when set, keeps only entries of that bucket.
	Classification *Classification
	// TypeIDs, when non-empty, keeps only entries of the listed types.
	TypeIDs []string
	// IncludeAdjustments controls whether auto-adjustment entries enter the
	// aggregation. Policy, not a hard rule.
	IncludeAdjustments bool

	SortBy  SummaryColumn
	SortDir SortDirection
}

var classificationRank = map[Classification]int{
	ClassificationIngreso: 0,
	ClassificationGasto:   1,
	ClassificationEgreso:  2,
}

// labelCollator orders labels case-insensitively with Spanish collation.
var labelCollator = collate.New(language.Spanish, collate.Loose)

// Summarize groups entries into per-type, per-currency totals plus a grand
// total. It is pure: entries are never mutated and identical inputs produce
// identical output.
func Summarize(entries []*MovementEntry, classifier *Classifier, opts SummaryOptions) *Summary {
	from := NormalizeClosingDate(opts.From)
	to := EndOfClosingDate(opts.To)

	allowed := make(map[string]struct{}, len(opts.TypeIDs))
	for _, id := range opts.TypeIDs {
		allowed[id] = struct{}{}
	}

	rows := make(map[string]*SummaryRow)
	var order []string

	for _, entry := range entries {
		at := entry.CreatedAt.UTC()
		if at.Before(from) || at.After(to) {
			continue
		}
		if !opts.IncludeAdjustments && entry.IsAdjustment() {
			continue
		}
		if len(allowed) > 0 {
			if _, ok := allowed[entry.MovementTypeID]; !ok {
				continue
			}
		}

		classification := classifier.Classify(entry)
		if opts.Classification != nil && classification != *opts.Classification {
			continue
		}

		row, ok := rows[entry.MovementTypeID]
		if !ok {
			row = &SummaryRow{
				MovementTypeID: entry.MovementTypeID,
				Label:          classifier.TypeLabel(entry.MovementTypeID),
				Classification: classification,
				Totals:         make(map[Currency]SummaryBucket),
			}
			rows[entry.MovementTypeID] = row
			order = append(order, entry.MovementTypeID)
		}

		bucket := row.Totals[entry.Currency]
		switch classification {
		case ClassificationIngreso:
			bucket.Ingreso = bucket.Ingreso.Add(entry.AmountIncome)
		case ClassificationGasto:
			bucket.Gasto = bucket.Gasto.Add(entry.AmountExpense)
		default:
			bucket.Egreso = bucket.Egreso.Add(entry.AmountExpense)
		}
		row.Totals[entry.Currency] = bucket
	}

	result := make([]*SummaryRow, 0, len(order))
	for _, id := range order {
		result = append(result, rows[id])
	}

	sortRows(result, opts.SortBy, opts.SortDir)

	return &Summary{
		Rows:   result,
		Totals: sumRows(result),
	}
}

func sortRows(rows []*SummaryRow, column SummaryColumn, dir SortDirection) {
	less := func(a, b *SummaryRow) bool {
		if classificationRank[a.Classification] != classificationRank[b.Classification] {
			return classificationRank[a.Classification] < classificationRank[b.Classification]
		}
		return labelCollator.CompareString(a.Label, b.Label) < 0
	}

	switch column {
	case SummaryColumnLabel:
		less = func(a, b *SummaryRow) bool {
			return labelCollator.CompareString(a.Label, b.Label) < 0
		}
	case SummaryColumnClassification:
		less = func(a, b *SummaryRow) bool {
			return classificationRank[a.Classification] < classificationRank[b.Classification]
		}
	case SummaryColumnNet:
		less = func(a, b *SummaryRow) bool {
			return rowNet(a).LessThan(rowNet(b))
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if dir == SortDescending {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}

func rowNet(row *SummaryRow) decimal.Decimal {
	net := decimal.Zero
	for _, bucket := range row.Totals {
		net = net.Add(bucket.Net())
	}
	return net
}

func sumRows(rows []*SummaryRow) SummaryTotals {
	totals := SummaryTotals{
		ByCurrency: make(map[Currency]SummaryBucket),
		NetBalance: make(map[Currency]decimal.Decimal),
	}
	for _, currency := range Currencies() {
		totals.ByCurrency[currency] = SummaryBucket{
			Ingreso: decimal.Zero,
			Gasto:   decimal.Zero,
			Egreso:  decimal.Zero,
		}
	}
	for _, row := range rows {
		for currency, bucket := range row.Totals {
			totals.ByCurrency[currency] = totals.ByCurrency[currency].add(bucket)
		}
	}
	for currency, bucket := range totals.ByCurrency {
		totals.NetBalance[currency] = bucket.Net()
	}
	return totals
}
