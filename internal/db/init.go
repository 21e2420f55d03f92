package db

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yousafzeb-byte/Relational-Databases-API-Rest/internal/models"
)

func Init() *gorm.DB {
	dsn := os.Getenv("DATABASE_DSN")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	// The Order.Products relation and the explicit OrderProduct model must
	// share one table so association rows can be mutated directly.
	if err := db.SetupJoinTable(&models.Order{}, "Products", &models.OrderProduct{}); err != nil {
		log.Fatal("failed to set up join table:", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderProduct{}); err != nil {
		log.Fatal("failed to migrate schema:", err)
	}

	return db
}
