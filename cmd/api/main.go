package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/loanlink/loanlink-api/internal/config"
	"github.com/loanlink/loanlink-api/internal/handlers"
	"github.com/loanlink/loanlink-api/internal/middleware"
	"github.com/loanlink/loanlink-api/internal/payments"
	"github.com/loanlink/loanlink-api/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)
	db := client.Database(cfg.MongoDatabase)
	log.Println("Successfully connected to MongoDB!")

	// --- Stores & Payment Client ---
	userStore := store.NewUserStore(db)
	loanStore := store.NewLoanStore(db)
	applicationStore := store.NewApplicationStore(db)
	paymentClient := payments.NewClient(cfg.StripeSecretKey)

	h := handlers.NewHandler(cfg, userStore, loanStore, applicationStore, paymentClient)

	// --- Gin Router ---
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(middleware.Identify([]byte(cfg.JWTSecret)))

	// --- Routes ---
	r.GET("/", func(c *gin.Context) {
		c.String(200, "LoanLink server always running!")
	})

	r.POST("/auth/token", h.IssueToken)

	// User Directory
	r.GET("/users", h.ListUsers)
	r.GET("/users/:id", h.GetUser)
	r.GET("/users/:id/role", h.GetUserRole) // :id is the email here
	r.PATCH("/users/:id", h.UpdateUserStatus)
	r.PATCH("/users/:id/suspended", h.SuspendUser)
	r.POST("/users", h.CreateUser)

	// Loan Catalog
	r.GET("/loans", h.ListLoans)
	r.GET("/featured-loans", h.FeaturedLoans)
	r.GET("/loans/:id", h.GetLoan)
	r.PATCH("/loans/:id", h.UpdateLoanVisibility)
	r.POST("/loans", h.CreateLoan)
	r.DELETE("/loans/:id", h.DeleteLoan)

	// Application & Payment Ledger
	r.GET("/loan-applications", h.ListApplications)
	r.POST("/loan-applications", h.CreateApplication)
	r.PATCH("/loan-applications/:id", h.DecideApplication)
	r.DELETE("/loan-applications/:id", h.DeleteApplication)
	r.POST("/payment-checkout-session", h.CreateCheckoutSession)
	r.PATCH("/payment-success", h.ConfirmPayment)

	log.Printf("Starting server on port %s", cfg.APIPort)
	if err := r.Run(":" + cfg.APIPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
