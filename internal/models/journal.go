package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Journal is a row of the journals table.
type Journal struct {
	ID           string         `db:"id"`
	Number       string         `db:"number"`
	JournalDate  time.Time      `db:"date"`
	Description  string         `db:"description"`
	Status       string         `db:"status"`
	CancelReason sql.NullString `db:"cancel_reason"`
	Type         sql.NullString `db:"type"`
	ReversalOf   sql.NullString `db:"reversal_of"`
	AuditFields
}

// JournalLine is a row of the journal_lines table.
type JournalLine struct {
	ID          string          `db:"id"`
	JournalID   string          `db:"journal_id"`
	LineNo      int             `db:"line_no"`
	AccountCode string          `db:"account_code"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Memo        sql.NullString  `db:"memo"`
	Department  sql.NullString  `db:"department"`
	Project     sql.NullString  `db:"project"`
}
