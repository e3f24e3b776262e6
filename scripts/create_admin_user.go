package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	Password  string `gorm:"size:255;not null"`
	Role      string `gorm:"size:16;default:'user'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func main() {
	// Parse command line flags
	email := flag.String("email", "admin@example.com", "Admin email address")
	name := flag.String("name", "Admin", "Admin display name")
	password := flag.String("password", "admin-secret-123", "Admin password")
	dbPath := flag.String("db", "users.sqlite", "SQLite database path")
	flag.Parse()

	db, err := gorm.Open(sqlite.Open(*dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(&User{}); err != nil {
		log.Fatal("Failed to migrate schema:", err)
	}

	// Check if the admin already exists
	var existing User
	if err := db.Where("email = ?", *email).First(&existing).Error; err == nil {
		log.Printf("Admin user %s already exists (id=%d), nothing to do", *email, existing.ID)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := User{
		Name:     *name,
		Email:    *email,
		Password: string(hashed),
		Role:     "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	fmt.Printf("Created admin user %s (id=%d)\n", admin.Email, admin.ID)
	fmt.Println("Sign in with the password you provided via -password")
}
