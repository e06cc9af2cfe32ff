package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/tzabcoder/OrderBookSimulator/book"
	"github.com/tzabcoder/OrderBookSimulator/db/postgres"
	providers "github.com/tzabcoder/OrderBookSimulator/db/postgres/providers"
	"github.com/tzabcoder/OrderBookSimulator/repository"
	"github.com/tzabcoder/OrderBookSimulator/routes"
	orderService "github.com/tzabcoder/OrderBookSimulator/service"
)

var log = logrus.New()

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Warn("no .env file found, using process environment")
	}

	// 1. Optional journal database. Without POSTGRES_HOST the engine runs
	// purely in-memory and reporting serves from the in-memory histories.
	var (
		eventRepo *repository.EventRepository
		tradeRepo *repository.TradeRepository
		journal   book.Journal
	)
	if os.Getenv("POSTGRES_HOST") != "" {
		postgresClient, err := postgres.ConnectDB()
		if err != nil {
			log.Fatalf("Failed to connect journal database: %v", err)
		}
		defer postgresClient.Stop()

		if err := postgresClient.InitSchema(); err != nil {
			log.Fatalf("Failed to initialize journal schema: %v", err)
		}

		dbHelper, err := providers.NewDbProvider(postgresClient.PostgresClient)
		if err != nil {
			log.Fatalf("Failed to initialize DB helper: %v", err)
		}
		eventRepo = repository.NewEventRepository(dbHelper)
		tradeRepo = repository.NewTradeRepository(dbHelper)

		dbJournal := orderService.NewDBJournal(eventRepo, tradeRepo)
		defer dbJournal.Close()
		journal = dbJournal
	}

	// 2. Book registry and service
	registry := book.NewRegistry(nil, journal)
	orderSrv := orderService.NewOrderService(registry, eventRepo, tradeRepo)

	// 3. Gin router and handlers
	router := gin.Default()
	routes.RegisterRoutes(router, orderSrv)

	// 4. Run REST API
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Infof("Order book REST API running on %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start Gin server: %v", err)
		}
	}()

	// 5. Wait for OS signal to shut down gracefully
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Infof("Received signal %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("gracefully shut down")
}
