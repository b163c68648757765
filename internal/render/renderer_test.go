package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fayina-backend/internal/layout"
	"fayina-backend/internal/models"
	"fayina-backend/internal/money"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBlocks(t *testing.T, itemCount int) []layout.Block {
	t.Helper()
	price, err := money.Parse("100.00")
	require.NoError(t, err)

	items := make([]models.LineItem, itemCount)
	for i := range items {
		items[i] = models.LineItem{Description: fmt.Sprintf("Item %d", i+1), Quantity: 1, UnitPrice: price}
	}
	inv := &models.Invoice{
		Number:    "INV-000042",
		IssueDate: time.Date(2024, 10, 5, 0, 0, 0, 0, time.UTC),
		Customer:  models.Customer{Name: "Ada", Address: "Not Provided", Email: "Not Provided"},
		Items:     items,
		TaxRate:   decimal.RequireFromString("0.1"),
	}
	subtotal := inv.Subtotal()
	tax := subtotal.MulRate(inv.TaxRate)
	gross := subtotal.Add(tax)
	totals := models.Totals{
		Subtotal:   subtotal,
		Tax:        tax,
		GrossTotal: gross,
		NetTotal:   gross,
		Received:   money.Zero(),
		BalanceDue: gross,
	}
	return layout.Compose(inv, totals, layout.Options{
		MinItemRows:    3,
		CurrencySymbol: "N",
		Company: layout.CompanyInfo{
			Name:        "Fayina Luxury Couture",
			Address:     "Block E2 Abu Gidado Street, Wuye, Abuja, Nigeria",
			Email:       "fayinaluxurycouture@yahoo.com",
			Phone:       "+2349032837162",
			BankDetails: "GTB Bank Plc, 0214413459",
			PolicyText: "Payment is due within 14 days from the date of invoice. " +
				"Late payments may incur a late fee of 1.5% per month on any outstanding balance.",
		},
	})
}

func writeTestLogo(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		for y := 0; y < 20; y++ {
			img.Set(x, y, color.RGBA{R: 120, G: 40, B: 200, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func pageCount(out []byte) int {
	return bytes.Count(out, []byte("/Type /Page")) - bytes.Count(out, []byte("/Type /Pages"))
}

func TestRenderProducesPDF(t *testing.T) {
	r := NewRenderer(NewDecorator(FileLoader{}, ""))
	out, err := r.Render(testBlocks(t, 2), time.Date(2024, 10, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Equal(t, 1, pageCount(out))
}

func TestRenderDeterministic(t *testing.T) {
	issued := time.Date(2024, 10, 5, 0, 0, 0, 0, time.UTC)
	logo := writeTestLogo(t)
	decor := NewDecorator(FileLoader{}, logo)
	r := NewRenderer(decor)

	first, err := r.Render(testBlocks(t, 2), issued)
	require.NoError(t, err)
	second, err := r.Render(testBlocks(t, 2), issued)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second), "identical inputs must produce byte-identical output")
}

func TestRenderMissingAssetStillSucceeds(t *testing.T) {
	decor := NewDecorator(FileLoader{}, filepath.Join(t.TempDir(), "nope.png"))
	assert.False(t, decor.Enabled())

	r := NewRenderer(decor)
	out, err := r.Render(testBlocks(t, 2), time.Date(2024, 10, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderDecoratedDiffersFromUndecorated(t *testing.T) {
	issued := time.Date(2024, 10, 5, 0, 0, 0, 0, time.UTC)

	plain, err := NewRenderer(NewDecorator(FileLoader{}, "")).Render(testBlocks(t, 2), issued)
	require.NoError(t, err)

	decorated, err := NewRenderer(NewDecorator(FileLoader{}, writeTestLogo(t))).Render(testBlocks(t, 2), issued)
	require.NoError(t, err)

	assert.False(t, bytes.Equal(plain, decorated))
	assert.Greater(t, len(decorated), len(plain))
}

func TestRenderPaginatesLongTables(t *testing.T) {
	r := NewRenderer(NewDecorator(FileLoader{}, ""))

	short, err := r.Render(testBlocks(t, 2), time.Date(2024, 10, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	long, err := r.Render(testBlocks(t, 60), time.Date(2024, 10, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 1, pageCount(short))
	assert.Greater(t, pageCount(long), 1)
}

func TestDecoratorLoadsRealImage(t *testing.T) {
	decor := NewDecorator(FileLoader{}, writeTestLogo(t))
	assert.True(t, decor.Enabled())
}
