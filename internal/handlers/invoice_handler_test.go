package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"fayina-backend/internal/config"
	"fayina-backend/internal/render"
	"fayina-backend/internal/services"
	"fayina-backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Invoice.TaxRate = 0.10
	cfg.Invoice.MinItemRows = 3
	cfg.Invoice.CurrencySymbol = "N"
	cfg.Company.Name = "Fayina Luxury Couture"
	cfg.Company.Address = "Block E2 Abu Gidado Street, Wuye, Abuja, Nigeria"
	cfg.Company.Email = "fayinaluxurycouture@yahoo.com"
	cfg.Company.Phone = "+2349032837162"
	cfg.Company.BankDetails = "GTB Bank Plc, 0214413459"
	cfg.Company.PolicyText = "Payment is due within 14 days from the date of invoice."
	return cfg
}

func testHandler(t *testing.T) *InvoiceHandler {
	t.Helper()
	dir := t.TempDir()

	decorator := render.NewDecorator(render.FileLoader{}, filepath.Join(dir, "no-logo.png"))
	renderer := render.NewRenderer(decorator)
	svc := services.NewInvoiceService(services.NewULIDGenerator())

	return NewInvoiceHandler(
		svc,
		renderer,
		store.NewFileStore(filepath.Join(dir, "invoices.json")),
		store.NewFileStore(filepath.Join(dir, "customers.json")),
		testConfig(),
	)
}

func invoiceForm() url.Values {
	form := url.Values{}
	form.Set("customer_name", "Adaeze Obi")
	form.Set("customer_address", "12 Marina Road, Lagos")
	form.Set("customer_email", "adaeze@example.com")
	form.Add("description[]", "Evening gown")
	form.Add("quantity[]", "2")
	form.Add("unit_price[]", "15,000")
	form.Add("description[]", "Silk scarf")
	form.Add("quantity[]", "1")
	form.Add("unit_price[]", "5000")
	form.Set("discount", "5000")
	form.Set("received_amount", "10000")
	return form
}

func postForm(h *InvoiceHandler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.GenerateInvoice(rec, req)
	return rec
}

func TestGenerateInvoiceReturnsPDF(t *testing.T) {
	h := testHandler(t)

	rec := postForm(h, invoiceForm())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".pdf")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
}

func TestGenerateInvoicePersistsRecords(t *testing.T) {
	h := testHandler(t)

	rec := postForm(h, invoiceForm())
	require.Equal(t, http.StatusOK, rec.Code)

	invoices, err := h.Invoices.LoadAll()
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	customer, ok := invoices[0]["customer"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Adaeze Obi", customer["name"])
	assert.Equal(t, "33500.00", invoices[0]["net_total"])
	assert.Equal(t, "35000.00", invoices[0]["subtotal"])
	assert.Equal(t, "23500.00", invoices[0]["balance_due"])

	customers, err := h.Customers.LoadAll()
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Adaeze Obi", customers[0]["name"])
}

func TestGenerateInvoiceRejectsBadQuantity(t *testing.T) {
	h := testHandler(t)

	form := invoiceForm()
	form["quantity[]"][0] = "two"
	rec := postForm(h, form)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateInvoiceRejectsMissingName(t *testing.T) {
	h := testHandler(t)

	form := invoiceForm()
	form.Set("customer_name", "   ")
	rec := postForm(h, form)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateInvoiceRejectsNegativeDiscount(t *testing.T) {
	h := testHandler(t)

	form := invoiceForm()
	form.Set("discount", "-100")
	rec := postForm(h, form)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateInvoiceSkipsBlankRows(t *testing.T) {
	h := testHandler(t)

	form := invoiceForm()
	form.Add("description[]", "")
	form.Add("quantity[]", "")
	form.Add("unit_price[]", "")
	rec := postForm(h, form)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestListInvoicesEmpty(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices", nil)
	rec := httptest.NewRecorder()
	h.ListInvoices(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
