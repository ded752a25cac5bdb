package ports

import "context"

// TxManager scopes one load-mutate-save cycle. Repositories pick the
// transaction up from the context passed to fn.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
