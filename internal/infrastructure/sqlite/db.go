// Package sqlite implementa los puertos de persistencia sobre SQLite embebido (gorm + glebarez/sqlite,
// sin cgo). Sirve para instalaciones de una sola máquina (DB_DRIVER=sqlite) y para los tests.
//
// Las fechas se guardan siempre en UTC: SQLite compara timestamps como texto.
package sqlite

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jhoicas/remitos-api/internal/domain"
)

// MemoryDSN base en memoria (tests).
const MemoryDSN = ":memory:"

// Open abre la base en path y migra el esquema.
// SQLite admite un solo escritor: el pool queda en una conexión.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite %s: %w", path, err)
	}

	if err := db.AutoMigrate(allModels()...); err != nil {
		return nil, fmt.Errorf("migrar sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Close libera la conexión subyacente.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func storeErr(op string, err error) error {
	return domain.NewStoreError(op, err)
}

func utc(t time.Time) time.Time { return t.UTC() }
