package repositories

import "context"

// TxFunc runs inside a transaction with repositories bound to it.
type TxFunc func(ctx context.Context, repos RepositoryProvider) error

// TransactionManager runs units of work atomically. The transaction commits
// when fn returns nil and rolls back otherwise, including on panic.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn TxFunc) error
}
