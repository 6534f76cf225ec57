package store

import (
	"context"
	"database/sql"

	"github.com/lguimbarda/dupbench/dupes/core"
)

// DefaultBufferSize is the channel buffer between the row cursor and the
// stream consumer.
const DefaultBufferSize = 64

// Scanner converts the current row into a value.
type Scanner[T any] func(*sql.Rows) (T, error)

// Query creates a Stream that runs query on every Emit and emits one value
// per row. Scan errors are emitted as error Results and the stream goes on;
// query and cursor errors end it.
func Query[T any](db *sql.DB, query string, scanner Scanner[T], args ...any) core.Stream[T] {
	return core.Emit(func(ctx context.Context) <-chan core.Result[T] {
		out := make(chan core.Result[T], DefaultBufferSize)
		go func() {
			defer close(out)
			rows, err := db.QueryContext(ctx, query, args...)
			if err != nil {
				core.Send(ctx, out, core.Err[T](err))
				return
			}
			defer rows.Close()
			for rows.Next() {
				value, err := scanner(rows)
				if err != nil {
					if !core.Send(ctx, out, core.Err[T](err)) {
						return
					}
					continue
				}
				if !core.Send(ctx, out, core.Ok(value)) {
					return
				}
			}
			if err := rows.Err(); err != nil {
				core.Send(ctx, out, core.Err[T](err))
			}
		}()
		return out
	})
}
