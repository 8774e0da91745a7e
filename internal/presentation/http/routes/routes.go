package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicore/clinicore-api/internal/config"
	domainRepo "github.com/clinicore/clinicore-api/internal/domain/repository"
	"github.com/clinicore/clinicore-api/internal/presentation/http/handler"
	"github.com/clinicore/clinicore-api/internal/presentation/http/middleware"
	"github.com/clinicore/clinicore-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth          *handler.AuthHandler
	Clinic        *handler.ClinicHandler
	Appointment   *handler.AppointmentHandler
	Prescription  *handler.PrescriptionHandler
	Checkout      *handler.CheckoutHandler
	Report        *handler.ReportHandler
	Dashboard     *handler.DashboardHandler
	Patient       *handler.PatientHandler
	Doctor        *handler.DoctorHandler
	Inventory     *handler.InventoryHandler
	ItemCategory  *handler.ItemCategoryHandler
	Unit          *handler.UnitHandler
	Procedure     *handler.ProcedureHandler
	Lab           *handler.LabHandler
	StockPurchase *handler.StockPurchaseHandler
	Settings      *handler.SettingsHandler
	User          *handler.UserHandler
	Feed          *handler.FeedHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	ClinicRepo      domainRepo.ClinicRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Clinic context resolved from the subdomain or header
		protected.Use(middleware.ClinicMiddleware(deps.ClinicRepo))

		// Per-clinic rate limiter
		rateLimiter := middleware.NewClinicRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Settings
	protected.GET("/settings", h.Settings.GetSettings)
	protected.PUT("/settings", h.Settings.UpdateSettings)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.GetStats)
	protected.GET("/dashboard/low-stock", h.Dashboard.GetLowStock)
	protected.GET("/dashboard/expiring", h.Dashboard.GetExpiringBatches)

	// Live event feed
	protected.GET("/feed", h.Feed.Subscribe)
	protected.GET("/feed/status", h.Feed.Status)

	// Clinics
	registerClinicRoutes(protected, h)

	// Appointments
	registerAppointmentRoutes(protected, h)

	// Prescriptions
	registerPrescriptionRoutes(protected, h)

	// Sales (POS checkout)
	registerSaleRoutes(protected, h, deps)

	// Reports
	registerReportRoutes(protected, h)

	// Patients
	registerPatientRoutes(protected, h)

	// Doctors
	registerDoctorRoutes(protected, h)

	// Inventory
	registerInventoryRoutes(protected, h)

	// Item categories
	registerCategoryRoutes(protected, h)

	// Units
	registerUnitRoutes(protected, h)

	// Procedure catalog
	registerProcedureRoutes(protected, h)

	// Labs and lab tests
	registerLabRoutes(protected, h)

	// Stock purchases
	registerStockPurchaseRoutes(protected, h)

	// Users (Admin)
	registerUserRoutes(protected, h)

	// Roles (Admin)
	registerRoleRoutes(protected, h)

	// Permissions (Admin)
	registerPermissionRoutes(protected, h)

	// Super Admin routes
	registerAdminRoutes(protected, h)
}

func registerClinicRoutes(protected *gin.RouterGroup, h *Handlers) {
	clinics := protected.Group("/clinics")
	{
		clinics.GET("", h.Clinic.List)
		clinics.POST("", h.Clinic.Create)
		clinics.GET("/current", h.Clinic.GetCurrent)
		clinics.PUT("/current", h.Clinic.Update)
		clinics.PUT("/current/settings", h.Clinic.UpdateSettings)
		clinics.GET("/current/members", h.Clinic.ListMembers)
		clinics.POST("/current/members", h.Clinic.InviteMember)
		clinics.PUT("/current/members/:user_id", h.Clinic.UpdateMemberRole)
		clinics.DELETE("/current/members/:user_id", h.Clinic.RemoveMember)
	}
}

func registerAppointmentRoutes(protected *gin.RouterGroup, h *Handlers) {
	appointments := protected.Group("/appointments")
	appointments.Use(middleware.RequirePermission("manage-appointments"))
	{
		appointments.GET("", h.Appointment.List)
		appointments.POST("", h.Appointment.Create)
		appointments.GET("/schedule", h.Appointment.GetDaySchedule)
		appointments.GET("/:id", h.Appointment.Get)
		appointments.PUT("/:id", h.Appointment.Update)
		appointments.DELETE("/:id", h.Appointment.Delete)
		appointments.PUT("/:id/status", h.Appointment.UpdateStatus)
		appointments.POST("/:id/arrived", h.Appointment.MarkArrived)
		appointments.POST("/:id/pay", h.Appointment.RecordFeePayment)
		appointments.POST("/:id/refund", h.Appointment.RefundFee)
		appointments.GET("/:id/prescriptions", h.Prescription.GetByAppointment)
	}
}

func registerPrescriptionRoutes(protected *gin.RouterGroup, h *Handlers) {
	prescriptions := protected.Group("/prescriptions")
	prescriptions.Use(middleware.RequirePermission("manage-appointments"))
	{
		prescriptions.GET("/unpaid", h.Prescription.ListUnpaid)
		prescriptions.POST("/:id/settle", h.Prescription.Settle)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	sales := protected.Group("/sales")
	sales.Use(middleware.RequirePermission("manage-sales"))
	{
		sales.GET("", h.Checkout.List)
		// Checkout uses idempotency middleware to prevent duplicate sales
		sales.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Checkout.Checkout)
		sales.GET("/due", h.Checkout.ListDue)
		sales.GET("/invoice/:invoice_no", h.Checkout.GetByInvoiceNo)
		sales.GET("/invoice/:invoice_no/receipt", h.Checkout.ReceiptByInvoiceNo)
		sales.GET("/:id", h.Checkout.Get)
		sales.POST("/:id/pay", h.Checkout.PayDue)
		sales.GET("/:id/receipt", h.Checkout.Receipt)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	reports.Use(middleware.RequirePermission("view-reports"))
	{
		reports.GET("/appointments", h.Report.Get)
		reports.GET("/appointments/export.csv", h.Report.ExportCSV)
		reports.GET("/appointments/export.xlsx", h.Report.ExportXLSX)
	}
}

func registerPatientRoutes(protected *gin.RouterGroup, h *Handlers) {
	patients := protected.Group("/patients")
	patients.Use(middleware.RequirePermission("manage-patients"))
	{
		patients.GET("", h.Patient.List)
		patients.POST("", h.Patient.Create)
		patients.GET("/find", h.Patient.FindByContact)
		patients.GET("/:id", h.Patient.Get)
		patients.PUT("/:id", h.Patient.Update)
		patients.DELETE("/:id", h.Patient.Delete)
	}
}

func registerDoctorRoutes(protected *gin.RouterGroup, h *Handlers) {
	doctors := protected.Group("/doctors")
	doctors.Use(middleware.RequirePermission("manage-doctors"))
	{
		doctors.GET("", h.Doctor.List)
		doctors.POST("", h.Doctor.Create)
		doctors.GET("/active", h.Doctor.ListActive)
		doctors.GET("/:id", h.Doctor.Get)
		doctors.PUT("/:id", h.Doctor.Update)
		doctors.DELETE("/:id", h.Doctor.Delete)
	}
}

func registerInventoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	inventory := protected.Group("/inventory")
	inventory.Use(middleware.RequirePermission("manage-inventory"))
	{
		inventory.GET("", h.Inventory.List)
		inventory.POST("", h.Inventory.Create)
		inventory.POST("/import", h.Inventory.Import)
		inventory.GET("/low-stock", h.Inventory.GetLowStock)
		inventory.GET("/:id", h.Inventory.Get)
		inventory.PUT("/:id", h.Inventory.Update)
		inventory.DELETE("/:id", h.Inventory.Delete)
		inventory.POST("/:id/adjust", h.Inventory.AdjustStock)
		inventory.GET("/:id/batches", h.Inventory.GetBatches)
	}
}

func registerCategoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	categories := protected.Group("/categories")
	categories.Use(middleware.RequirePermission("manage-categories"))
	{
		categories.GET("", h.ItemCategory.List)
		categories.POST("", h.ItemCategory.Create)
		categories.PUT("/:id", h.ItemCategory.Update)
		categories.DELETE("/:id", h.ItemCategory.Delete)
	}
}

func registerUnitRoutes(protected *gin.RouterGroup, h *Handlers) {
	units := protected.Group("/units")
	units.Use(middleware.RequirePermission("manage-units"))
	{
		units.GET("", h.Unit.List)
		units.POST("", h.Unit.Create)
		units.PUT("/:id", h.Unit.Update)
		units.DELETE("/:id", h.Unit.Delete)
	}
}

func registerProcedureRoutes(protected *gin.RouterGroup, h *Handlers) {
	procedures := protected.Group("/procedures")
	procedures.Use(middleware.RequirePermission("manage-procedures"))
	{
		procedures.GET("", h.Procedure.List)
		procedures.POST("", h.Procedure.Create)
		procedures.GET("/:id", h.Procedure.Get)
		procedures.PUT("/:id", h.Procedure.Update)
		procedures.DELETE("/:id", h.Procedure.Delete)
	}
}

func registerLabRoutes(protected *gin.RouterGroup, h *Handlers) {
	labs := protected.Group("/labs")
	labs.Use(middleware.RequirePermission("manage-labs"))
	{
		labs.GET("", h.Lab.List)
		labs.POST("", h.Lab.Create)
		labs.GET("/:id", h.Lab.Get)
		labs.PUT("/:id", h.Lab.Update)
		labs.DELETE("/:id", h.Lab.Delete)
		labs.GET("/:id/tests", h.Lab.GetTests)
	}

	labTests := protected.Group("/lab-tests")
	labTests.Use(middleware.RequirePermission("manage-labs"))
	{
		labTests.GET("", h.Lab.ListTests)
		labTests.POST("", h.Lab.CreateTest)
		labTests.PUT("/:id", h.Lab.UpdateTest)
		labTests.DELETE("/:id", h.Lab.DeleteTest)
	}
}

func registerStockPurchaseRoutes(protected *gin.RouterGroup, h *Handlers) {
	purchases := protected.Group("/purchases")
	purchases.Use(middleware.RequirePermission("manage-purchases"))
	{
		purchases.GET("", h.StockPurchase.List)
		purchases.POST("", h.StockPurchase.Create)
		purchases.GET("/pending", h.StockPurchase.GetPending)
		purchases.GET("/:id", h.StockPurchase.Get)
		purchases.POST("/:id/receive", h.StockPurchase.Receive)
		purchases.DELETE("/:id", h.StockPurchase.Delete)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequirePermission("manage-users"))
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id/roles", h.User.UpdateRoles)
		users.DELETE("/:id", h.User.Delete)
	}
}

func registerRoleRoutes(protected *gin.RouterGroup, h *Handlers) {
	roles := protected.Group("/roles")
	roles.Use(middleware.RequirePermission("manage-users"))
	{
		roles.GET("", h.User.ListRoles)
	}
}

func registerPermissionRoutes(protected *gin.RouterGroup, h *Handlers) {
	permissions := protected.Group("/permissions")
	permissions.Use(middleware.RequirePermission("manage-users"))
	{
		permissions.GET("", h.User.ListPermissions)
	}
}

func registerAdminRoutes(protected *gin.RouterGroup, h *Handlers) {
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole("super-admin"))
	{
		admin.POST("/clinics/assign-user", h.Clinic.AssignUser)
	}
}
