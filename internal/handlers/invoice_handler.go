package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fayina-backend/internal/config"
	"fayina-backend/internal/layout"
	"fayina-backend/internal/metrics"
	"fayina-backend/internal/models"
	"fayina-backend/internal/money"
	"fayina-backend/internal/render"
	"fayina-backend/internal/services"
	"fayina-backend/internal/store"
	"fayina-backend/pkg/utils"

	"github.com/shopspring/decimal"
)

type InvoiceHandler struct {
	Service   *services.InvoiceService
	Renderer  *render.Renderer
	Invoices  store.RecordStore
	Customers store.RecordStore
	Config    *config.Config
}

func NewInvoiceHandler(s *services.InvoiceService, r *render.Renderer, invoices, customers store.RecordStore, cfg *config.Config) *InvoiceHandler {
	return &InvoiceHandler{
		Service:   s,
		Renderer:  r,
		Invoices:  invoices,
		Customers: customers,
		Config:    cfg,
	}
}

// GenerateInvoice accepts the intake form, computes totals, renders the PDF
// and returns it as a download. Customer and invoice records are appended to
// the stores before the response is written.
func (h *InvoiceHandler) GenerateInvoice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	customer, err := models.NewCustomer(
		r.FormValue("customer_name"),
		r.FormValue("customer_address"),
		r.FormValue("customer_email"),
	)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := parseLineItems(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	discount := money.Zero()
	if raw := strings.TrimSpace(r.FormValue("discount")); raw != "" {
		discount, err = money.ParseNonNegative(raw)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid discount amount")
			return
		}
	}

	received := money.Zero()
	if raw := strings.TrimSpace(r.FormValue("received_amount")); raw != "" {
		received, err = money.Parse(raw)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid received amount")
			return
		}
	}

	taxRate := decimal.NewFromFloat(h.Config.Invoice.TaxRate)
	inv, err := h.Service.NewInvoice(customer, items, taxRate)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	totals, err := h.Service.ComputeTotals(inv, discount, received)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	blocks := layout.Compose(inv, totals, layoutOptions(h.Config))

	start := time.Now()
	pdf, err := h.Renderer.Render(blocks, inv.IssueDate)
	if err != nil {
		log.Printf("[Invoice] PDF render failed for %s: %v", inv.Number, err)
		utils.Error(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}
	metrics.RenderDuration.Observe(time.Since(start).Seconds())

	if err := h.Customers.Append(models.Record{
		"name":    customer.Name,
		"address": customer.Address,
		"email":   customer.Email,
	}); err != nil {
		log.Printf("[Invoice] Customer record append failed: %v", err)
		utils.Error(w, http.StatusInternalServerError, "Failed to save customer record")
		return
	}

	if err := h.Invoices.Append(h.Service.ToRecord(inv, totals)); err != nil {
		log.Printf("[Invoice] Invoice record append failed: %v", err)
		utils.Error(w, http.StatusInternalServerError, "Failed to save invoice record")
		return
	}

	metrics.InvoicesGenerated.Inc()
	log.Printf("[Invoice] Generated %s for %s (%d items)", inv.Number, customer.Name, len(inv.Items))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", inv.Number+".pdf"))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// ListInvoices returns every saved invoice record.
func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	records, err := h.Invoices.LoadAll()
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to load invoice records")
		return
	}
	utils.JSON(w, http.StatusOK, records)
}

// parseLineItems reads the parallel description[], quantity[] and
// unit_price[] form arrays. Rows with an empty description are skipped so
// the form's blank trailing rows do not fail validation.
func parseLineItems(r *http.Request) ([]models.LineItem, error) {
	descriptions := r.Form["description[]"]
	quantities := r.Form["quantity[]"]
	prices := r.Form["unit_price[]"]

	var items []models.LineItem
	for i, desc := range descriptions {
		desc = strings.TrimSpace(desc)
		if desc == "" {
			continue
		}
		if i >= len(quantities) || i >= len(prices) {
			return nil, errors.New("mismatched item rows")
		}

		qty, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(quantities[i]), ",", ""))
		if err != nil {
			return nil, fmt.Errorf("invalid quantity for item %d", i+1)
		}

		price, err := money.ParseNonNegative(prices[i])
		if err != nil {
			return nil, fmt.Errorf("invalid unit price for item %d", i+1)
		}

		items = append(items, models.LineItem{
			Description: desc,
			Quantity:    qty,
			UnitPrice:   price,
		})
	}
	return items, nil
}

func layoutOptions(cfg *config.Config) layout.Options {
	return layout.Options{
		MinItemRows:    cfg.Invoice.MinItemRows,
		CurrencySymbol: cfg.Invoice.CurrencySymbol,
		Company: layout.CompanyInfo{
			Name:        cfg.Company.Name,
			Address:     cfg.Company.Address,
			Email:       cfg.Company.Email,
			Phone:       cfg.Company.Phone,
			BankDetails: cfg.Company.BankDetails,
			PolicyText:  cfg.Company.PolicyText,
		},
	}
}
