package tr

import (
	"context"

	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/e"
	"github.com/jackc/pgx/v5"
)

type txKey struct{}

// WithTx stores a pgx transaction in the context for repositories further
// down the call chain.
func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromCtx extracts the pgx transaction placed in the context by the usecase
// layer. Repositories that must run inside the caller's transaction use this.
func TxFromCtx(ctx context.Context) (pgx.Tx, error) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	if !ok {
		return nil, e.ErrTransactionNotFound
	}
	return tx, nil
}
