package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fayina-backend/internal/handlers"
)

func NewRouter(
	invoiceHandler *handlers.InvoiceHandler,
	customerHandler *handlers.CustomerHandler,
	pageHandler *handlers.PageHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()

	// Serve static files
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// Intake form and PDF generation
	r.HandleFunc("/", pageHandler.IndexPage).Methods("GET")
	r.HandleFunc("/generate", invoiceHandler.GenerateInvoice).Methods("POST")

	// API routes
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/invoices", invoiceHandler.ListInvoices).Methods("GET")
	api.HandleFunc("/customers", customerHandler.ListCustomers).Methods("GET")
	api.HandleFunc("/customers", customerHandler.CreateCustomer).Methods("POST")

	// Health check endpoints
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}
