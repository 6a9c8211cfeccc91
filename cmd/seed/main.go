package main

import (
	"log"
	"os"

	"github.com/TharakaGamage830/OmniDash/pkg/config"
	"github.com/TharakaGamage830/OmniDash/pkg/database"
	"github.com/TharakaGamage830/OmniDash/pkg/models"
	"github.com/TharakaGamage830/OmniDash/pkg/utils"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Initialize database
	if err := database.InitDatabase(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	if err := database.AutoMigrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	seedSuperAdmin()
	seedCategories()

	log.Println("Seeding complete!")
}

func seedSuperAdmin() {
	email := "admin@anutouch.com"
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	var admin models.Admin
	if err := database.DB.Where(`"email" = ?`, email).First(&admin).Error; err == nil {
		log.Printf("Admin %s already exists", email)
		return
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin = models.Admin{
		FullName:       "Tharaka Ashen",
		Email:          email,
		Password:       hashedPassword,
		WhatsappNumber: "94762310156",
		IsSuperAdmin:   true,
	}

	if err := database.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin:", err)
	}

	log.Printf("Initial admin %s created", email)
}

func seedCategories() {
	var count int64
	database.DB.Model(&models.Category{}).Count(&count)
	if count > 0 {
		log.Println("Categories already seeded")
		return
	}

	initialCategories := []models.Category{
		{Name: "Key Tags", Prefix: "KEY", Description: "Handmade key tags"},
		{Name: "Hair Clips", Prefix: "HAR", Description: "Cute hair accessories"},
		{Name: "Flower Bouquets", Prefix: "FLW", Description: "Gift bouquets"},
		{Name: "Bag Items", Prefix: "BAG", Description: "Accessories for bags"},
		{Name: "Clear Bags", Prefix: "CLR", Description: "Transparent stylish bags"},
		{Name: "Pencil Case", Prefix: "PEN", Description: "Stationery storage"},
		{Name: "Birthday Cards", Prefix: "CRD", Description: "Custom cards"},
	}

	if err := database.DB.Create(&initialCategories).Error; err != nil {
		log.Fatal("Failed to seed categories:", err)
	}

	log.Println("Initial categories seeded")
}
