package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/clinicore/clinicore-api/internal/application/feed"
	"github.com/clinicore/clinicore-api/internal/application/service"
	"github.com/clinicore/clinicore-api/internal/config"
	"github.com/clinicore/clinicore-api/internal/infrastructure/database"
	"github.com/clinicore/clinicore-api/internal/infrastructure/repository"
	"github.com/clinicore/clinicore-api/internal/presentation/http/handler"
	"github.com/clinicore/clinicore-api/internal/presentation/http/routes"
	"github.com/clinicore/clinicore-api/pkg/email"
	"github.com/clinicore/clinicore-api/pkg/oauth"
	"github.com/clinicore/clinicore-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)
	clinicRepo := repository.NewClinicRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	procedureRepo := repository.NewProcedureRepository(db)
	labRepo := repository.NewLabRepository(db)
	labTestRepo := repository.NewLabTestRepository(db)
	categoryRepo := repository.NewItemCategoryRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	batchRepo := repository.NewBatchRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	apptProcRepo := repository.NewAppointmentProcedureRepository(db)
	prescriptionRepo := repository.NewPrescriptionRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	saleItemRepo := repository.NewSaleItemRepository(db)
	purchaseRepo := repository.NewStockPurchaseRepository(db)
	purchaseDetailRepo := repository.NewStockPurchaseDetailRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Live event feed shared by the scheduling and checkout services
	hub := feed.NewHub()
	defer hub.Close()

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, passwordResetRepo, jwtManager, emailService, googleOAuthService)
	clinicService := service.NewClinicService(clinicRepo)
	patientService := service.NewPatientService(patientRepo)
	doctorService := service.NewDoctorService(doctorRepo)
	procedureService := service.NewProcedureService(procedureRepo)
	labService := service.NewLabService(labRepo, labTestRepo)
	categoryService := service.NewItemCategoryService(categoryRepo)
	unitService := service.NewUnitService(unitRepo)
	inventoryService := service.NewInventoryService(inventoryRepo, categoryRepo, unitRepo, batchRepo)
	appointmentService := service.NewAppointmentService(appointmentRepo, apptProcRepo, prescriptionRepo, doctorRepo, procedureRepo, clinicRepo, hub)
	reconcileService := service.NewReconcileService(appointmentRepo, prescriptionRepo, hub)
	checkoutService := service.NewCheckoutService(saleRepo, saleItemRepo, appointmentRepo, procedureRepo, labTestRepo, inventoryRepo, patientRepo, clinicRepo, reconcileService, emailService, hub)
	receiptService := service.NewReceiptService(saleRepo, clinicRepo, appointmentRepo, userRepo)
	purchaseService := service.NewStockPurchaseService(purchaseRepo, purchaseDetailRepo, inventoryRepo, batchRepo)
	reportService := service.NewReportService(appointmentRepo)
	dashboardService := service.NewDashboardService(analyticsRepo, inventoryRepo, batchRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	userService := service.NewUserService(userRepo, roleRepo, permissionRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:          handler.NewAuthHandler(authService, clinicService),
		Clinic:        handler.NewClinicHandler(clinicService),
		Appointment:   handler.NewAppointmentHandler(appointmentService),
		Prescription:  handler.NewPrescriptionHandler(reconcileService),
		Checkout:      handler.NewCheckoutHandler(checkoutService, receiptService),
		Report:        handler.NewReportHandler(reportService),
		Dashboard:     handler.NewDashboardHandler(dashboardService),
		Patient:       handler.NewPatientHandler(patientService),
		Doctor:        handler.NewDoctorHandler(doctorService),
		Inventory:     handler.NewInventoryHandler(inventoryService),
		ItemCategory:  handler.NewItemCategoryHandler(categoryService),
		Unit:          handler.NewUnitHandler(unitService),
		Procedure:     handler.NewProcedureHandler(procedureService),
		Lab:           handler.NewLabHandler(labService),
		StockPurchase: handler.NewStockPurchaseHandler(purchaseService),
		Settings:      handler.NewSettingsHandler(settingsService),
		User:          handler.NewUserHandler(userService),
		Feed:          handler.NewFeedHandler(hub),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		ClinicRepo:      clinicRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
