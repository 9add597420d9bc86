package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/greenmile/leafdrop/internal/config"
	"github.com/greenmile/leafdrop/internal/db"
	"github.com/greenmile/leafdrop/internal/es"
	"github.com/greenmile/leafdrop/internal/httpserver"
	"github.com/greenmile/leafdrop/internal/logging"
	authmw "github.com/greenmile/leafdrop/internal/middleware/auth"
	"github.com/greenmile/leafdrop/internal/middleware/requestlog"
	"github.com/greenmile/leafdrop/internal/mykafka"
	"github.com/greenmile/leafdrop/internal/objstore"
	"github.com/greenmile/leafdrop/internal/repo"
	"github.com/greenmile/leafdrop/internal/service/orders"
	"github.com/greenmile/leafdrop/internal/service/zones"
)

const productIndex = "products"

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(os.Getenv("LOG_LEVEL"))
	slog.SetDefault(logger)

	gormDB, err := db.Open(context.Background(), configuration)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	var producer *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	var esClient *elasticsearch.Client
	if configuration.ES_URL != "" {
		esClient, err = es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init failed: %v", err)
		}
	}

	images, err := objstore.NewDiskStore(configuration.IMAGE_DIR, configuration.IMAGE_BASE_URL)
	if err != nil {
		log.Fatal(err)
	}

	r := repo.New(gormDB)
	orderSvc := &orders.Service{Repo: r, FreeDeliveryThreshold: configuration.FreeDeliveryThreshold}
	resolver := &zones.Resolver{Repo: r}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), requestlog.Middleware(logger))
	e.Static(configuration.IMAGE_BASE_URL, configuration.IMAGE_DIR)

	deps := httpserver.Deps{
		ZonesHandler:        &httpserver.ZonesHandler{Resolver: resolver},
		CatalogHandler:      &httpserver.CatalogHandler{Repo: r, ES: esClient, Index: productIndex},
		OrderHandler:        &httpserver.OrderHandler{Svc: orderSvc, Producer: producer},
		ProductAdminHandler: &httpserver.ProductAdminHandler{Repo: r, Producer: producer, ES: esClient, Index: productIndex, Images: images},
		ZoneAdminHandler:    &httpserver.ZoneAdminHandler{Repo: r, Producer: producer},
		OrderAdminHandler:   &httpserver.OrderAdminHandler{Svc: orderSvc, Producer: producer},
		BackofficeHandler:   &httpserver.BackofficeHandler{Repo: r},
		Verifier:            &authmw.TokenVerifier{JWTSecret: []byte(configuration.JWT_SECRET)},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.HTTP_PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
