// Package migrations holds the registration schema and applies it with goose.
package migrations

import (
	"context"
	"embed"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed *.sql
var embedded embed.FS

// Up applies every pending migration to the database behind pool.
func Up(ctx context.Context, pool *pgxpool.Pool, l *zap.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(embedded)
	goose.SetLogger(gooseLogger{l.Sugar()})
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "set goose dialect")
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return errors.Wrap(err, "apply migrations")
	}
	return nil
}

type gooseLogger struct {
	s *zap.SugaredLogger
}

func (g gooseLogger) Fatalf(format string, v ...any) { g.s.Fatalf(format, v...) }
func (g gooseLogger) Printf(format string, v ...any) { g.s.Infof(format, v...) }
