package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/password"
	"storefront/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "") // Postgres DSN; empty falls back to SQLite
	viper.SetDefault("SQLITE_PATH", "storefront.db")
	viper.SetDefault("RABBITMQ_URL", "") // Empty disables checkout events
	viper.SetDefault("ADMIN_EMAIL", "admin@storefront.local")
	viper.SetDefault("ADMIN_PASSWORD", "")
	viper.SetDefault("SESSION_EXPIRATION_HOURS", 24)
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Database ---
	db, err := openDatabase()
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.CartItem{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)

	if err := seedAdmin(userRepo); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	// --- Checkout event publisher (optional) ---
	var publisher services.CheckoutPublisher
	if rabbitMQURL := viper.GetString("RABBITMQ_URL"); rabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient
	} else {
		log.Println("RABBITMQ_URL not set, checkout events disabled")
	}

	// --- Services ---
	authService := services.NewAuthService(userRepo)
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(cartRepo, productRepo, publisher)

	// --- Session store ---
	// Server-side sessions: the cookie carries only an opaque UUID key, the
	// identity lives in the store and dies with Destroy on logout.
	store := session.New(session.Config{
		Expiration:   time.Duration(viper.GetInt("SESSION_EXPIRATION_HOURS")) * time.Hour,
		KeyLookup:    "cookie:session_id",
		KeyGenerator: uuid.NewString,
	})

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService, store)
	productHandler := handlers.NewProductHandler(productService, cartService, store)
	cartHandler := handlers.NewCartHandler(cartService, store)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())
	app.Use(middleware.LoadUser(store, authService))

	authHandler.RegisterRoutes(app)
	productHandler.RegisterRoutes(app)
	cartHandler.RegisterRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// openDatabase connects to Postgres when a DSN is configured and falls back
// to a local SQLite file otherwise. TranslateError turns driver unique
// violations into gorm.ErrDuplicatedKey, which the repositories rely on.
func openDatabase() (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}
	if dsn := viper.GetString("DATABASE_DSN"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), cfg)
	}
	return gorm.Open(sqlite.Open(viper.GetString("SQLITE_PATH")), cfg)
}

// seedAdmin ensures the configured admin account exists. Without a configured
// password no account is created, so a default credential never ships.
func seedAdmin(userRepo repositories.UserRepository) error {
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	if adminPassword == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin seeding")
		return nil
	}

	if _, err := userRepo.GetByEmail(adminEmail); err == nil {
		return nil
	}

	hash, err := password.Hash(adminPassword)
	if err != nil {
		return err
	}
	admin := &models.User{
		FirstName:    "Store",
		LastName:     "Admin",
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := userRepo.Create(admin); err != nil {
		return err
	}
	log.Printf("Seeded admin user %s", adminEmail)
	return nil
}
