// Seeds the first admin account. Run once after the database is up.
package main

import (
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/osoroyal/churchhub/config"
	"github.com/osoroyal/churchhub/database"
	"github.com/osoroyal/churchhub/models"
)

func main() {
	cfg := config.Load()
	logger, _ := zap.NewDevelopment()
	database.Connect(cfg, logger)

	username := envOr("ADMIN_USERNAME", "admin")
	password := envOr("ADMIN_PASSWORD", "changeme")

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var existing models.User
	if err := database.DB.Where("username = ?", username).First(&existing).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("failed to query users: %v", err)
		}
	} else {
		fmt.Println("admin user already exists:", username)
		os.Exit(0)
	}

	u := models.User{
		Username: username,
		Password: string(hashed),
		Role:     "admin",
		Name:     "Administrator",
	}
	if err := database.DB.Create(&u).Error; err != nil {
		log.Fatalf("failed to insert admin: %v", err)
	}

	fmt.Println("admin user created:", username)
	fmt.Println("change the password after first login")
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
