package db

import (
	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
	"gorm.io/gorm/logger"
)

// Connect opens the MySQL connection pool. Driver errors such as duplicate keys
// are translated into gorm sentinel errors
func Connect(dsn string, verbose bool) (*gorm.DB, error) {
	level := logger.Warn
	if verbose {
		level = logger.Info
	}
	return gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	})
}
