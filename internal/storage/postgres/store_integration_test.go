package postgres

import (
	"context"
	"testing"
	"time"
)

func TestStore_PostgresPingAndMigrationStatus(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	version, applied, err := store.MigrationStatus(ctx)
	if err != nil {
		t.Fatalf("migration status: %v", err)
	}
	if version < 1 || applied < 1 {
		t.Fatalf("expected at least one applied migration, got version=%d applied=%d", version, applied)
	}
}

func TestStore_PostgresMigrateDownUp(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := store.MigrateDown(ctx, 1); err != nil {
		t.Fatalf("migrate down: %v", err)
	}
	if err := store.MigrateUp(ctx, 0); err != nil {
		t.Fatalf("migrate up after down: %v", err)
	}
}

func TestStore_NilSafety(t *testing.T) {
	var store *Store
	if err := store.Close(); err != nil {
		t.Fatalf("close on nil store: %v", err)
	}
	if err := store.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error on nil store")
	}
}
