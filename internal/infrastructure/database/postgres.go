package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/clinicore/clinicore-api/internal/config"
	"github.com/clinicore/clinicore-api/internal/domain/entity"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// User-related entities
		&entity.User{},
		&entity.Role{},
		&entity.Permission{},
		&entity.PasswordResetToken{},

		// Clinic entities
		&entity.Clinic{},
		&entity.ClinicMembership{},

		// People
		&entity.Patient{},
		&entity.Doctor{},

		// Catalog entities
		&entity.Procedure{},
		&entity.Lab{},
		&entity.LabTest{},

		// Pharmacy inventory entities
		&entity.ItemCategory{},
		&entity.Unit{},
		&entity.InventoryItem{},
		&entity.Batch{},

		// Scheduling entities
		&entity.Appointment{},
		&entity.AppointmentProcedure{},
		&entity.Prescription{},

		// Transaction entities
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.SalePayment{},
		&entity.StockPurchase{},
		&entity.StockPurchaseDetail{},

		// System entities
		&entity.IdempotencyKey{},
		&entity.UserSettings{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with default data (roles, permissions, admin user)
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Create default permissions
	permissions := []entity.Permission{
		{Name: "view-dashboard", GuardName: "web"},
		{Name: "manage-appointments", GuardName: "web"},
		{Name: "manage-sales", GuardName: "web"},
		{Name: "manage-patients", GuardName: "web"},
		{Name: "manage-doctors", GuardName: "web"},
		{Name: "manage-procedures", GuardName: "web"},
		{Name: "manage-labs", GuardName: "web"},
		{Name: "manage-inventory", GuardName: "web"},
		{Name: "manage-categories", GuardName: "web"},
		{Name: "manage-units", GuardName: "web"},
		{Name: "manage-purchases", GuardName: "web"},
		{Name: "manage-users", GuardName: "web"},
		{Name: "manage-clinic-settings", GuardName: "web"},
		{Name: "view-reports", GuardName: "web"},
	}

	for i := range permissions {
		var existing entity.Permission
		if err := db.Where("name = ?", permissions[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&permissions[i]).Error; err != nil {
				log.Printf("Warning: failed to create permission %s: %v", permissions[i].Name, err)
			}
		}
	}

	// Reload permissions with IDs
	var allPermissions []entity.Permission
	db.Find(&allPermissions)

	pick := func(names ...string) []entity.Permission {
		var out []entity.Permission
		for _, name := range names {
			for _, p := range allPermissions {
				if p.Name == name {
					out = append(out, p)
					break
				}
			}
		}
		return out
	}

	ensureRole := func(name string, perms []entity.Permission) {
		var role entity.Role
		if err := db.Where("name = ?", name).First(&role).Error; err != nil {
			role = entity.Role{
				Name:        name,
				GuardName:   "web",
				Permissions: perms,
			}
			if err := db.Create(&role).Error; err != nil {
				log.Printf("Warning: failed to create %s role: %v", name, err)
			}
		}
	}

	ensureRole("super-admin", allPermissions)
	ensureRole("admin", allPermissions)

	// Front-desk staff handle scheduling and checkout
	ensureRole("reception", pick(
		"view-dashboard",
		"manage-appointments",
		"manage-sales",
		"manage-patients",
	))

	// Pharmacy staff handle the dispensary and its stock
	ensureRole("pharmacist", pick(
		"view-dashboard",
		"manage-sales",
		"manage-inventory",
		"manage-categories",
		"manage-units",
		"manage-purchases",
	))

	// Newly registered accounts start with dashboard access only
	ensureRole("user", pick("view-dashboard"))

	// Create super admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			// Hash the password
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				// Get super-admin role
				var saRole entity.Role
				if err := db.Where("name = ?", "super-admin").First(&saRole).Error; err == nil {
					if adminName == "" {
						adminName = "Super Admin"
					}
					// Split admin name into first and last name
					firstName := adminName
					lastName := ""
					for i, c := range adminName {
						if c == ' ' {
							firstName = adminName[:i]
							lastName = adminName[i+1:]
							break
						}
					}
					adminUser := entity.User{
						ID:        uuid.New(),
						FirstName: firstName,
						LastName:  lastName,
						Email:     adminEmail,
						Password:  string(hashedPassword),
						Roles:     []entity.Role{saRole},
					}
					if err := db.Create(&adminUser).Error; err != nil {
						log.Printf("Warning: failed to create super admin user: %v", err)
					} else {
						log.Printf("Super admin user created: %s", adminEmail)
					}
				}
			}
		} else {
			log.Printf("Super admin user already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
