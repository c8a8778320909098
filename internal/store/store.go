package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const defaultQueryTimeout = 5 * time.Second

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// withTimeout bounds a single query. Callers do not impose their own
// deadline on the store.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
