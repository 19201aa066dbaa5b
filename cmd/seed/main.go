package main

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"shopcart/internal/database"
	"shopcart/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "shopcart.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Brand{},
		&domain.Product{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM products")
	db.Exec("DELETE FROM brands")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@shopcart.dev",
		PasswordHash: string(adminHash),
		Name:         "Platform Admin",
		Role:         domain.RoleAdmin,
		IsAdmin:      true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal(err)
	}

	ownerHash, _ := bcrypt.GenerateFromPassword([]byte("owner123"), bcrypt.DefaultCost)
	aliya := domain.User{
		Email:        "aliya@aurora.shop",
		PasswordHash: string(ownerHash),
		Name:         "Aliya",
		Mobile:       "+77001234567",
		Role:         domain.RoleUser,
	}
	marat := domain.User{
		Email:        "marat@borealis.shop",
		PasswordHash: string(ownerHash),
		Name:         "Marat",
		Mobile:       "+77007654321",
		Role:         domain.RoleUser,
	}
	if err := db.Create(&aliya).Error; err != nil {
		log.Fatal(err)
	}
	if err := db.Create(&marat).Error; err != nil {
		log.Fatal(err)
	}

	log.Println("Creating brands and products...")

	aurora := domain.Brand{OwnerID: aliya.ID, Name: "Aurora Home", Description: "Scandinavian-style home goods"}
	borealis := domain.Brand{OwnerID: marat.ID, Name: "Borealis Gear", Description: "Outdoor equipment"}
	if err := db.Create(&aurora).Error; err != nil {
		log.Fatal(err)
	}
	if err := db.Create(&borealis).Error; err != nil {
		log.Fatal(err)
	}

	products := []domain.Product{
		{BrandID: aurora.ID, Name: "Ceramic Lamp", Price: 12900, Stock: 40, Active: true},
		{BrandID: aurora.ID, Name: "Wool Throw", Price: 8900, Stock: 0, Active: true},
		{BrandID: borealis.ID, Name: "Trekking Pole", Price: 15900, Stock: 120, Active: true},
		{BrandID: borealis.ID, Name: "Dry Bag 20L", Price: 6900, Stock: 75, Active: false},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			log.Fatal(err)
		}
	}

	log.Printf("Seed complete: users=3 brands=2 products=%d", len(products))
}
