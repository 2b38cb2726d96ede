package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// AccountType is the stored account class name.
type AccountType string

// Account is a row of the accounts table.
type Account struct {
	Code        string          `db:"code"`
	Name        string          `db:"name"`
	AccountType AccountType     `db:"account_type"`
	Level       int             `db:"level"`
	ParentCode  sql.NullString  `db:"parent_code"`
	IsSystem    bool            `db:"is_system"`
	Status      string          `db:"status"`
	HasChildren bool            `db:"-"`
	Balance     decimal.Decimal `db:"balance"`
	AuditFields
}
