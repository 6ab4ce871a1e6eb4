package testhelpers

import (
	"context"
	"testing"

	"github.com/archive-alert/internal/domain/repository"
	"github.com/archive-alert/internal/repository/postgres"
)

// NewDBForTest wraps the test connection as a postgres.DB
func (tdb *TestDB) NewDBForTest() *postgres.DB {
	return postgres.NewDBForTest(tdb.DB, tdb.Logger)
}

// NewCounterRepositoryForTest migrates a fresh counter table and returns a repository on it
func (tdb *TestDB) NewCounterRepositoryForTest(t *testing.T) repository.CounterRepository {
	ctx := context.Background()
	if err := tdb.Cleanup(ctx); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	db := tdb.NewDBForTest()
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return postgres.NewCounterRepository(db)
}
