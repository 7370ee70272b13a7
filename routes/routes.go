package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"motoshop-api/config"
	"motoshop-api/controllers"
	"motoshop-api/middleware"
	"motoshop-api/models"
	"motoshop-api/repositories"
	"motoshop-api/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, emailService *services.EmailService, storageService *services.StorageService) {
	// Services
	billingService := services.NewBillingService(db, emailService)
	repairRepo := repositories.NewRepairRepository(db)
	repairService := services.NewRepairService(repairRepo, billingService, storageService)
	partsService := services.NewPartsService(db)

	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret, emailService)
	customerController := controllers.NewCustomerController(db)
	motorcycleController := controllers.NewMotorcycleController(db)
	repairController := controllers.NewRepairController(db, repairService, partsService, storageService)
	inventoryController := controllers.NewInventoryController(db)
	invoiceController := controllers.NewInvoiceController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(120, 20))

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/register", authController.Register)
		auth.POST("/logout", authController.Logout)
		auth.POST("/send-verification", authController.SendVerification)
		auth.POST("/verify-code", authController.VerifyCode)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		protected.GET("/me", authController.Me)
		protected.POST("/users", middleware.RequireRole(), authController.CreateUser)

		// Customer records (staff only)
		customers := protected.Group("/customers")
		customers.Use(middleware.RequireRole(models.RoleTecnico))
		{
			customers.GET("", customerController.GetCustomers)
			customers.GET("/:id", customerController.GetCustomer)
			customers.POST("", middleware.RequireRole(), customerController.CreateCustomer)
			customers.PUT("/:id", middleware.RequireRole(), customerController.UpdateCustomer)
			customers.DELETE("/:id", middleware.RequireRole(), customerController.DeleteCustomer)
		}

		// Motorcycles (clienti see their own garage)
		motorcycles := protected.Group("/motorcycles")
		{
			motorcycles.GET("", motorcycleController.GetMotorcycles)
			motorcycles.GET("/:id", motorcycleController.GetMotorcycle)
			motorcycles.POST("", middleware.RequireRole(models.RoleTecnico), motorcycleController.CreateMotorcycle)
			motorcycles.PUT("/:id", middleware.RequireRole(models.RoleTecnico), motorcycleController.UpdateMotorcycle)
			motorcycles.DELETE("/:id", middleware.RequireRole(), motorcycleController.DeleteMotorcycle)
		}

		// Repairs (clienti read their own; staff manage the lifecycle)
		repairs := protected.Group("/repairs")
		{
			repairs.GET("", repairController.GetRepairs)
			repairs.GET("/:id", repairController.GetRepair)
			repairs.GET("/:id/photos", repairController.GetPhotos)
			repairs.GET("/:id/photos/:photoId/url", repairController.GetPhotoURL)

			staff := repairs.Group("")
			staff.Use(middleware.RequireRole(models.RoleTecnico))
			{
				staff.POST("", repairController.CreateRepair)
				staff.PUT("/:id", repairController.UpdateRepair)
				staff.PUT("/:id/status", repairController.UpdateStatus)
				staff.POST("/:id/parts", repairController.AttachPart)
				staff.POST("/:id/photos", repairController.UploadPhoto)
				staff.DELETE("/:id", middleware.RequireRole(), repairController.DeleteRepair)
			}
		}

		// Inventory (staff only)
		inventory := protected.Group("/inventory")
		inventory.Use(middleware.RequireRole(models.RoleTecnico))
		{
			inventory.GET("", inventoryController.GetParts)
			inventory.GET("/low-stock", inventoryController.GetLowStock)
			inventory.GET("/:id", inventoryController.GetPart)
			inventory.POST("", middleware.RequireRole(), inventoryController.CreatePart)
			inventory.PUT("/:id", middleware.RequireRole(), inventoryController.UpdatePart)
			inventory.DELETE("/:id", middleware.RequireRole(), inventoryController.DeletePart)
		}

		// Invoices (clienti see their own; edits are admin only)
		invoices := protected.Group("/invoices")
		{
			invoices.GET("", invoiceController.GetInvoices)
			invoices.GET("/:id", invoiceController.GetInvoice)
			invoices.PUT("/:id", middleware.RequireRole(), invoiceController.UpdateInvoice)
		}
	}
}

// SetupCORS returns the CORS middleware used in front of every route.
func SetupCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
