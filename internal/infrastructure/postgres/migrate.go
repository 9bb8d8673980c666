package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationFiles devuelve los scripts embebidos en orden de aplicación.
func MigrationFiles() ([]string, error) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Migrate aplica los scripts embebidos. Son idempotentes (IF NOT EXISTS), así que se pueden
// ejecutar en cada arranque.
func Migrate(ctx context.Context, q Querier) error {
	names, err := MigrationFiles()
	if err != nil {
		return fmt.Errorf("listar migraciones: %w", err)
	}
	for _, name := range names {
		sql, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("leer %s: %w", name, err)
		}
		if _, err := q.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("aplicar %s: %w", name, err)
		}
	}
	return nil
}
