package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"fayina-backend/internal/config"
	"fayina-backend/internal/handlers"
	"fayina-backend/internal/health"
	h "fayina-backend/internal/http"
	"fayina-backend/internal/middleware"
	"fayina-backend/internal/render"
	"fayina-backend/internal/services"
	"fayina-backend/internal/store"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port > 0 {
		cfg.Server.Port = *port
	}

	customers := store.NewFileStore(filepath.Join(cfg.Store.DataDir, "customers.json"))
	invoices := store.NewFileStore(filepath.Join(cfg.Store.DataDir, "invoices.json"))

	decorator := render.NewDecorator(render.FileLoader{}, cfg.Assets.LogoPath)
	renderer := render.NewRenderer(decorator)
	invoiceService := services.NewInvoiceService(services.NewULIDGenerator())
	healthChecker := health.NewHealthChecker(cfg.Store.DataDir)

	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, renderer, invoices, customers, cfg)
	customerHandler := handlers.NewCustomerHandler(customers)
	pageHandler := handlers.NewPageHandler()
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(invoiceHandler, customerHandler, pageHandler, healthHandler)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("[Server] Invoice service running on %s", addr)
	log.Printf("[Server] Data directory: %s", cfg.Store.DataDir)

	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
