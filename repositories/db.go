package repositories

import (
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"synthflow/config"
)

// InitDB opens the postgres connection described by the configuration.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"host": cfg.DBHost,
		"name": cfg.DBName,
	}).Info("Database connection established")
	return db, nil
}
