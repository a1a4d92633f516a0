package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/busfleet/internal/db"
	"github.com/nurpe/busfleet/internal/model"
	"github.com/nurpe/busfleet/testutil"
)

func TestMigrate_createsTablesAndIsRepeatable(t *testing.T) {
	database := testutil.NewDB(t)

	for _, table := range []interface{}{
		&model.Bus{}, &model.Driver{}, &model.Conductor{}, &model.Route{},
		&model.Shift{}, &model.Complaint{}, &model.AccidentReport{},
		&model.Admin{}, &model.User{},
	} {
		assert.True(t, database.Migrator().HasTable(table))
	}
	assert.True(t, database.Migrator().HasIndex(&model.Shift{}, "idx_shifts_date_bus"))

	require.NoError(t, db.Migrate(database))
}
