package models

import "gorm.io/gorm"

// Migrate creates or updates the tables for every model. Tables created
// before authorship was tracked gain a nullable author_id column, leaving
// existing rows without an author.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() != "sqlite" {
		return db.AutoMigrate(All()...)
	}
	// SQLite adds constraints by rebuilding the table, and dropping the old
	// copy fails while enforced foreign keys still point at it.
	return db.Connection(func(conn *gorm.DB) error {
		if err := conn.Exec("PRAGMA foreign_keys = OFF").Error; err != nil {
			return err
		}
		migrateErr := conn.AutoMigrate(All()...)
		if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil && migrateErr == nil {
			return err
		}
		return migrateErr
	})
}
