package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fondocore/fondo/internal/domain"
	"github.com/fondocore/fondo/internal/usecase"
)

// CreateMovementRequest represents a request to record a manual movement.
type CreateMovementRequest struct {
	CompanyID      string           `json:"company_id"`
	AccountID      string           `json:"account_id"`
	Currency       string           `json:"currency"`
	MovementTypeID string           `json:"movement_type_id"`
	Amount         decimal.Decimal  `json:"amount"`
	Manager        string           `json:"manager"`
	Breakdown      domain.Breakdown `json:"breakdown,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateMovementRequest) ToUseCaseInput() usecase.CreateMovementInput {
	return usecase.CreateMovementInput{
		CompanyID:      r.CompanyID,
		AccountID:      domain.FundAccount(r.AccountID),
		Currency:       domain.Currency(r.Currency),
		MovementTypeID: r.MovementTypeID,
		Amount:         r.Amount,
		Manager:        r.Manager,
		Breakdown:      r.Breakdown,
	}
}

// EditAmountRequest represents a request to change an entry's amount.
type EditAmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CreateClosingRequest represents a request to create a daily closing.
type CreateClosingRequest struct {
	CompanyID   string                      `json:"company_id"`
	AccountID   string                      `json:"account_id"`
	ClosingDate string                      `json:"closing_date"`
	Breakdown   map[string]domain.Breakdown `json:"breakdown,omitempty"`
	Manager     string                      `json:"manager"`
	Notes       string                      `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateClosingRequest) ToUseCaseInput() (usecase.CreateClosingInput, error) {
	date, err := time.Parse(domain.ClosingDateLayout, r.ClosingDate)
	if err != nil {
		return usecase.CreateClosingInput{}, err
	}

	breakdown := make(map[domain.Currency]domain.Breakdown, len(r.Breakdown))
	for currency, counts := range r.Breakdown {
		breakdown[domain.Currency(currency)] = counts
	}

	return usecase.CreateClosingInput{
		CompanyID:   r.CompanyID,
		AccountID:   domain.FundAccount(r.AccountID),
		ClosingDate: date,
		Breakdown:   breakdown,
		Manager:     r.Manager,
		Notes:       r.Notes,
	}, nil
}

// AddTypeRequest represents a request to add a movement type.
type AddTypeRequest struct {
	OwnerID  string `json:"owner_id"`
	Category string `json:"category"`
	Name     string `json:"name"`
}

// ToUseCaseInput converts to use case input.
func (r *AddTypeRequest) ToUseCaseInput() usecase.AddTypeInput {
	return usecase.AddTypeInput{
		OwnerID:  r.OwnerID,
		Category: domain.Category(r.Category),
		Name:     r.Name,
	}
}

// ReorderTypeRequest represents a request to move a type within its scope.
type ReorderTypeRequest struct {
	Direction string `json:"direction"`
}

// SummaryRequest represents the query parameters of an aggregation run.
type SummaryRequest struct {
	CompanyID          string
	AccountID          string
	From               string
	To                 string
	Classification     string
	TypeIDs            []string
	IncludeAdjustments bool
	SortBy             string
	SortDir            string
}

// ToUseCaseInput converts to use case input.
func (r *SummaryRequest) ToUseCaseInput() (usecase.SummarizeInput, error) {
	from, err := time.Parse(domain.ClosingDateLayout, r.From)
	if err != nil {
		return usecase.SummarizeInput{}, err
	}
	to, err := time.Parse(domain.ClosingDateLayout, r.To)
	if err != nil {
		return usecase.SummarizeInput{}, err
	}

	input := usecase.SummarizeInput{
		CompanyID:          r.CompanyID,
		AccountID:          domain.FundAccount(r.AccountID),
		From:               from,
		To:                 to,
		TypeIDs:            r.TypeIDs,
		IncludeAdjustments: r.IncludeAdjustments,
		SortBy:             domain.SummaryColumn(r.SortBy),
		SortDir:            domain.SortDirection(r.SortDir),
	}
	if r.Classification != "" {
		classification := domain.Classification(r.Classification)
		input.Classification = &classification
	}

	return input, nil
}
