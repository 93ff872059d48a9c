package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rogerio-castellano/pos-register/internal/auth"
	"github.com/rogerio-castellano/pos-register/internal/cart"
	"github.com/rogerio-castellano/pos-register/internal/checkout"
	"github.com/rogerio-castellano/pos-register/internal/config"
	"github.com/rogerio-castellano/pos-register/internal/db"
	api "github.com/rogerio-castellano/pos-register/internal/http"
	"github.com/rogerio-castellano/pos-register/internal/http/handlers"
	rl "github.com/rogerio-castellano/pos-register/internal/http/rate_limiter"
	"github.com/rogerio-castellano/pos-register/internal/repo"

	_ "github.com/rogerio-castellano/pos-register/docs"
)

// @title POS Register API
// @version 1.0
// @description REST API for a small point of sale: products, customers with credit, carts, checkout and payments.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Could not load configuration: %v", err)
	}
	auth.SetSecret(cfg.JWTSecret)

	go auth.StartRefreshTokenCleaner(30 * time.Minute)
	go rl.StartVisitorCleanupLoop()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	defer rdb.Close()

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Could not connect to database:", err)
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		log.Fatal("❌ Could not initialize schema:", err)
	}

	productRepo := repo.NewPostgresProductRepository(database)
	customerRepo := repo.NewPostgresCustomerRepository(database)

	handlers.SetProductRepo(productRepo)
	handlers.SetCustomerRepo(customerRepo)
	handlers.SetSaleRepo(repo.NewPostgresSaleRepository(database))
	handlers.SetPaymentRepo(repo.NewPostgresPaymentRepository(database))
	handlers.SetUserRepo(repo.NewPostgresUserRepository(database))
	handlers.SetMetricsRepo(repo.NewPostgresMetricsRepository(database))

	carts := cart.NewRedisStore(rdb, cfg.CartTTL)
	handlers.SetEngine(checkout.NewEngine(
		productRepo,
		customerRepo,
		repo.NewPostgresCheckoutRepository(database),
		carts,
	))

	r := api.NewRouter()
	log.Printf("✅ Server running on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal(err)
	}
}
