package db

import (
	"household_ledger/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// MySQL compares strings under the server default collation, which ignores
// case on MySQL 8. Tables use a binary collation so emails match as stored.
const (
	mysqlTableOptions = " DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin"
	mysqlEmailColumn  = "ALTER TABLE `users` MODIFY `email` VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL"
)

// Models lists every table in dependency order
func Models() []any {
	return []any{&domain.User{}, &domain.Category{}, &domain.Transaction{}, &domain.Budget{}}
}

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB, log logrus.FieldLogger) error {
	isMySQL := db.Dialector.Name() == "mysql"
	if isMySQL {
		db = db.Set("gorm:table_options", mysqlTableOptions) // Applied to newly created tables
	}

	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(Models()...); err != nil {
		log.WithError(err).Error("Migration failed")
		return err
	}

	// Tables created before the binary collation still need their email column converted
	if isMySQL {
		if err := db.Exec(mysqlEmailColumn).Error; err != nil {
			log.WithError(err).Error("Email collation migration failed")
			return err
		}
	}
	log.Info("Migration completed.") // Log successful migration
	return nil
}
