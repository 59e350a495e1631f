package database

import (
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/osoroyal/churchhub/config"
	"github.com/osoroyal/churchhub/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config, log *zap.Logger) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}
	DB = db

	if err := Migrate(db); err != nil {
		log.Fatal("auto migrate failed", zap.Error(err))
	}

	if err := SeedStoreCatalog(db); err != nil {
		log.Warn("store catalog seed failed", zap.Error(err))
	}
}

// Migrate is shared with handler tests, which run it against sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.District{},
		&models.Zone{},
		&models.HomeCell{},
		&models.Member{},
		&models.TransferLog{},
		&models.Staff{},
		&models.PayrollRun{},
		&models.PayrollItem{},
		&models.Contribution{},
		&models.Event{},
		&models.WelfareRequest{},
		&models.Message{},
		&models.StoreModule{},
		&models.Subscription{},
		&models.User{},
	)
}

// SeedStoreCatalog inserts the module catalog once; existing codes are left alone.
func SeedStoreCatalog(db *gorm.DB) error {
	catalog := []models.StoreModule{
		{Code: "membership", Name: "Membership", Description: "Member records and home-cell assignment", Monthly: 0},
		{Code: "hr", Name: "HR & Payroll", Description: "Staff records and monthly payroll runs", Monthly: 4900},
		{Code: "finance", Name: "Finance", Description: "Contributions and fund summaries", Monthly: 4900},
		{Code: "events", Name: "Events", Description: "Service and special-event calendar", Monthly: 1900},
		{Code: "welfare", Name: "Welfare", Description: "Welfare request workflow", Monthly: 1900},
		{Code: "messaging", Name: "Messaging", Description: "SMS and email announcements", Monthly: 2900},
	}
	for _, m := range catalog {
		var existing models.StoreModule
		if err := db.Where("code = ?", m.Code).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&m).Error; err != nil {
			return err
		}
	}
	return nil
}
