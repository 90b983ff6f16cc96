package migrations

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Simplici0/housecost/internal/db"
)

func TestUp_LogsThroughZap(t *testing.T) {
	database, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "migrate-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	core, logs := observer.New(zap.InfoLevel)
	if err := Up(database, zap.New(core)); err != nil {
		t.Fatalf("Up: %v", err)
	}

	entries := logs.All()
	if len(entries) == 0 {
		t.Fatalf("expected goose output to be logged")
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Message, "\n") {
			t.Fatalf("message kept trailing newline: %q", e.Message)
		}
		if e.ContextMap()["component"] != "migrations" {
			t.Fatalf("entry missing component field: %+v", e.ContextMap())
		}
	}

	var count int
	if err := database.QueryRow(`SELECT COUNT(*) FROM price_config`).Scan(&count); err != nil {
		t.Fatalf("price_config table missing: %v", err)
	}
}

func TestUp_NilLoggerIsAllowed(t *testing.T) {
	database, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "migrate-nil.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := Up(database, nil); err != nil {
		t.Fatalf("Up: %v", err)
	}
}
