package dto

import (
	"time"

	"github.com/SscSPs/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// The balance always starts at zero and is never accepted from callers.
type CreateAccountRequest struct {
	Code       string `json:"code" binding:"required,max=32"`
	Name       string `json:"name" binding:"required,max=255"`
	Type       string `json:"type" binding:"required,oneof=Assets Liabilities Equity Revenue Expenses"`
	ParentCode string `json:"parentCode"`
	IsSystem   bool   `json:"isSystem"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	Type          domain.AccountType `json:"type"`
	Level         int                `json:"level"`
	ParentCode    string             `json:"parentCode,omitempty"`
	IsSystem      bool               `json:"isSystem"`
	Status        string             `json:"status"`
	HasChildren   bool               `json:"hasChildren"`
	Balance       decimal.Decimal    `json:"balance"`
	CreatedAt     time.Time          `json:"createdAt"`
	CreatedBy     string             `json:"createdBy"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy string             `json:"lastUpdatedBy"`
}

// UpdateAccountRequest defines the fields allowed for updating an account.
// Pointers distinguish omitted fields from zero values; an empty ParentCode moves the account to the root.
type UpdateAccountRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=255"`
	ParentCode *string `json:"parentCode"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		Code:          acc.Code,
		Name:          acc.Name,
		Type:          acc.Type,
		Level:         acc.Level,
		ParentCode:    acc.ParentCode,
		IsSystem:      acc.IsSystem,
		Status:        string(acc.Status),
		HasChildren:   acc.HasChildren,
		Balance:       acc.Balance,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	IncludeInactive bool `form:"includeInactive"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
