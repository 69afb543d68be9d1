package postgresql

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrate applies every embedded migration in name order inside one transaction.
// Migrations are written to be re-runnable.
func Migrate(ctx context.Context, db *database.DB) error {
	names, err := fs.Glob(migrationFS, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	return WithTransaction(ctx, db, func(tx pgx.Tx) error {
		q := GetQuerier(WithTx(ctx, tx), db)
		for _, name := range names {
			stmt, err := migrationFS.ReadFile(name)
			if err != nil {
				return err
			}
			if _, err := q.Exec(ctx, string(stmt)); err != nil {
				return fmt.Errorf("migration %s: %w", name, err)
			}
			slog.Debug("Applied migration", "name", name)
		}
		return nil
	})
}
