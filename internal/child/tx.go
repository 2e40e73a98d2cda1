package child

import "context"

// TxRunner runs fn atomically. The Postgres runner binds every store call in
// fn's context to one transaction; deployments without cross-store atomicity
// use NopTx.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// NopTx runs fn directly with no transaction.
type NopTx struct{}

func (NopTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
