package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tillpointhq/tillpoint-backend/internal/modules/auth"
	"github.com/tillpointhq/tillpoint-backend/internal/modules/catalog"
	"github.com/tillpointhq/tillpoint-backend/internal/modules/checkout"
	"github.com/tillpointhq/tillpoint-backend/internal/modules/customer"
	"github.com/tillpointhq/tillpoint-backend/internal/modules/sale"
	"github.com/tillpointhq/tillpoint-backend/internal/modules/staff"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// ── Identity ────────────────────────────────────────────
	staffRepo := staff.NewPostgresRepository(db)
	staffService := staff.NewService(staffRepo)
	staff.NewHandler(staffService).RegisterRoutes(router)

	authService := auth.NewService(staffRepo)
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Catalog & Customers ─────────────────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	customerRepo := customer.NewPostgresRepository(db)
	customerService := customer.NewService(customerRepo)
	customer.NewHandler(customerService).RegisterRoutes(router)

	// ── Sales ───────────────────────────────────────────────
	saleMetrics := sale.NewMetrics()
	saleRepo := sale.NewPostgresRepository(db)
	saleService := sale.NewService(saleRepo, customerService, saleMetrics)
	sale.NewHandler(saleService).RegisterRoutes(router)

	// ── Checkout ────────────────────────────────────────────
	sessionStore := checkout.NewSessionStore()
	checkoutService := checkout.NewService(sessionStore, catalogService, customerService, saleService)
	checkout.NewHandler(checkoutService).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("TillPoint API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
