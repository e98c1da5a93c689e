package models

import (
	"context"
	"testing"

	"github.com/mytheresa/stock-tracker/pkg/config"
	"github.com/mytheresa/stock-tracker/pkg/db"
	"github.com/mytheresa/stock-tracker/pkg/logger"
	"github.com/mytheresa/stock-tracker/pkg/migrate"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(db.SQLiteDSN("file::memory:")), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migrate.Up(context.Background(), sqlDB, config.DriverSQLite, logger.Nop()))
	return conn
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
