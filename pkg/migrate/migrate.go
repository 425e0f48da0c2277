// Package migrate ejecuta las migraciones goose embebidas en el binario.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/pressly/goose/v3"
)

var fileRe = regexp.MustCompile(`^\d+_[a-z0-9_]+\.sql$`)

// Run ejecuta un comando goose (up, down, status, version, redo, reset...) sobre fsys.
func Run(ctx context.Context, db *sql.DB, fsys fs.FS, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.RunContext(ctx, command, db, ".", args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// Validate revisa nombres de archivo y que cada migración tenga sección Up y Down.
func Validate(fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	found := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		if !fileRe.MatchString(e.Name()) {
			return fmt.Errorf("invalid migration filename %q", e.Name())
		}
		body, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return fmt.Errorf("read %s: %w", e.Name(), err)
		}
		if !strings.Contains(string(body), "-- +goose Up") {
			return fmt.Errorf("%s: missing -- +goose Up", e.Name())
		}
		if !strings.Contains(string(body), "-- +goose Down") {
			return fmt.Errorf("%s: missing -- +goose Down", e.Name())
		}
		found++
	}
	if found == 0 {
		return fmt.Errorf("no migrations found")
	}
	return nil
}
