package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunPostgres opens gorm with the postgres dialector without connecting and records every query it builds.
func dryRunPostgres(t *testing.T) (*gorm.DB, *[]string) {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=places dbname=places sslmode=disable"}),
		&gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)

	var statements []string
	err = db.Callback().Query().After("gorm:query").Register("test:capture_sql", func(tx *gorm.DB) {
		statements = append(statements, tx.Statement.SQL.String())
	})
	require.NoError(t, err)
	return db, &statements
}

func TestOwnerGorm_FindByID_LocksRowInsideTransaction(t *testing.T) {
	db, statements := dryRunPostgres(t)

	_, err := (&gormTx{tx: db}).Owners().FindByID(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, *statements, 1)
	assert.Contains(t, (*statements)[0], `FROM "users"`)
	assert.Contains(t, (*statements)[0], "FOR UPDATE", "owner row must be locked until commit so concurrent owned-set writes serialize")
}

func TestOwnerGorm_FindByID_NoLockOutsideTransaction(t *testing.T) {
	db, statements := dryRunPostgres(t)

	_, err := NewOwnerRepository(db).FindByID(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, *statements, 1)
	assert.NotContains(t, (*statements)[0], "FOR UPDATE")
}
