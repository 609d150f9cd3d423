// Package testutil provides an in-memory database for repository tests.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jfcordova/dictator-arena/internal/battle"
	"github.com/jfcordova/dictator-arena/internal/contestant"
	"github.com/jfcordova/dictator-arena/internal/item"
	"github.com/jfcordova/dictator-arena/internal/market"
	"github.com/jfcordova/dictator-arena/internal/user"
)

// OpenTestDB opens a fresh in-memory database with the full schema. The
// connection pool is pinned to one connection so the in-memory database
// survives for the whole test.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&user.User{}, &user.Dictator{}, &user.Sponsor{},
		&contestant.Contestant{}, &contestant.Gift{}, &contestant.Buff{},
		&battle.Battle{}, &battle.Event{}, &battle.EventBattle{}, &battle.Bet{},
		&item.InventoryItem{},
		&market.Transaction{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}
