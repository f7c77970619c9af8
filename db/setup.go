package db

import (
	"database/sql"

	"github.com/duopot/duopot/internal/models"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDatabase opens the connection through lib/pq so that store-level
// error mapping sees typed *pq.Error values.
func ConnectDatabase(dsn string) error {
	sqlDB, err := sql.Open("postgres", dsn)

	if err != nil {
		return err
	}

	if err = sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return err
	}

	DB, err = gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.Profile{},
		&models.Saving{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return InstallPolicies(DB)
}
