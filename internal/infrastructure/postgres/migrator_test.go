package postgres

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("failed to read embedded migrations: %v", err)
	}

	ups, downs := 0, 0
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}

	if ups == 0 || ups != downs {
		t.Fatalf("expected paired up/down migrations, got %d up and %d down", ups, downs)
	}
}

func TestRunMigrationsInvalidURL(t *testing.T) {
	if err := RunMigrations("not-a-url", zerolog.Nop()); err == nil {
		t.Fatalf("expected error for invalid database URL")
	}
}
