package postgres

import (
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/fondocore/fondo/internal/domain"
)

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func breakdownToJSON(b domain.Breakdown) ([]byte, error) {
	if b == nil {
		return nil, nil
	}

	return json.Marshal(b)
}

func jsonToBreakdown(data []byte) (domain.Breakdown, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var b domain.Breakdown
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}

	return b, nil
}
