package mock

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/personal-finance/backend/internal/integration/persistence/model"
)

var (
	dbOnce sync.Once
	db     *Db
)

// Db is the in-memory sqlite database shared by every scenario.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens the shared database once and migrates every persisted model.
func NewDb() *Db {
	dbOnce.Do(func() {
		db = open()
	})
	return db
}

func open() *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}
	// A single connection keeps the in-memory database alive and serializes writers.
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	models := model.AllModels()
	if err := dbConn.AutoMigrate(models...); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	d := &Db{
		DbConn: dbConn,
		models: make(map[string]any, len(models)),
	}
	for _, m := range models {
		stmt := &gorm.Statement{DB: dbConn}
		if err := stmt.Parse(m); err != nil {
			panic(fmt.Sprintf("failed to parse model %T. err: %s", m, err.Error()))
		}
		if !dbConn.Migrator().HasTable(m) {
			panic(fmt.Sprintf("table for model %T was not created", m))
		}
		d.models[stmt.Schema.Table] = m
	}
	return d
}

// ClearDB removes every row, soft-deleted ones included.
func (d *Db) ClearDB() error {
	return d.DbConn.Transaction(func(tx *gorm.DB) error {
		for table, m := range d.models {
			err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error
			if err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		return nil
	})
}

// GetModel returns the model persisted in table.
func (d *Db) GetModel(table string) (any, bool) {
	m, ok := d.models[table]
	return m, ok
}
