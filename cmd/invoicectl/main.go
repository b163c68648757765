package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"fayina-backend/internal/config"
	"fayina-backend/internal/layout"
	"fayina-backend/internal/models"
	"fayina-backend/internal/money"
	"fayina-backend/internal/render"
	"fayina-backend/internal/services"
	"fayina-backend/internal/store"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "invoicectl",
		Usage: "Generate and manage Fayina Luxury Couture invoices from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "Directory for customer and invoice records (overrides config)",
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "Directory where generated PDFs are written",
				Value: ".",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "create",
				Usage:  "Create a new invoice interactively and write the PDF",
				Action: runCreate,
			},
			{
				Name:   "list",
				Usage:  "List saved invoice records",
				Action: runList,
			},
			{
				Name:   "add-customer",
				Usage:  "Add a customer record without creating an invoice",
				Action: runAddCustomer,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) *config.Config {
	cfg := config.Load()
	if dir := c.String("data-dir"); dir != "" {
		cfg.Store.DataDir = dir
	}
	return cfg
}

func runCreate(c *cli.Context) error {
	cfg := loadConfig(c)
	reader := bufio.NewReader(os.Stdin)

	name := prompt(reader, "Customer name: ")
	address := prompt(reader, "Customer address: ")
	email := prompt(reader, "Customer email: ")

	customer, err := models.NewCustomer(name, address, email)
	if err != nil {
		return err
	}

	var items []models.LineItem
	for {
		desc := prompt(reader, "Item description (blank to finish): ")
		if desc == "" {
			break
		}

		qty, err := strconv.Atoi(prompt(reader, "Quantity: "))
		if err != nil {
			fmt.Println("Quantity must be an integer, try again")
			continue
		}

		price, err := money.ParseNonNegative(prompt(reader, "Unit price: "))
		if err != nil {
			fmt.Println("Unit price must be a non-negative number, try again")
			continue
		}

		items = append(items, models.LineItem{Description: desc, Quantity: qty, UnitPrice: price})
	}

	discount := money.Zero()
	if raw := prompt(reader, "Discount (blank for none): "); raw != "" {
		discount, err = money.ParseNonNegative(raw)
		if err != nil {
			return err
		}
	}

	received := money.Zero()
	if raw := prompt(reader, "Amount received (blank for none): "); raw != "" {
		received, err = money.Parse(raw)
		if err != nil {
			return err
		}
	}

	svc := services.NewInvoiceService(services.NewULIDGenerator())
	inv, err := svc.NewInvoice(customer, items, decimal.NewFromFloat(cfg.Invoice.TaxRate))
	if err != nil {
		return err
	}

	totals, err := svc.ComputeTotals(inv, discount, received)
	if err != nil {
		return err
	}

	decorator := render.NewDecorator(render.FileLoader{}, cfg.Assets.LogoPath)
	renderer := render.NewRenderer(decorator)

	blocks := layout.Compose(inv, totals, layout.Options{
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
	})

	pdf, err := renderer.Render(blocks, inv.IssueDate)
	if err != nil {
		return err
	}

	outPath := filepath.Join(c.String("out"), inv.Number+".pdf")
	if err := os.WriteFile(outPath, pdf, 0644); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}

	customers := store.NewFileStore(filepath.Join(cfg.Store.DataDir, "customers.json"))
	invoices := store.NewFileStore(filepath.Join(cfg.Store.DataDir, "invoices.json"))

	if err := customers.Append(models.Record{
		"name":    customer.Name,
		"address": customer.Address,
		"email":   customer.Email,
	}); err != nil {
		return err
	}
	if err := invoices.Append(svc.ToRecord(inv, totals)); err != nil {
		return err
	}

	fmt.Printf("Invoice %s written to %s\n", inv.Number, outPath)
	fmt.Printf("Total: %s  Balance due: %s\n",
		totals.NetTotal.Format(cfg.Invoice.CurrencySymbol),
		totals.BalanceDue.Format(cfg.Invoice.CurrencySymbol))
	return nil
}

func runList(c *cli.Context) error {
	cfg := loadConfig(c)
	invoices := store.NewFileStore(filepath.Join(cfg.Store.DataDir, "invoices.json"))

	records, err := invoices.LoadAll()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No invoices found")
		return nil
	}

	for _, rec := range records {
		name := ""
		if c, ok := rec["customer"].(map[string]interface{}); ok {
			name, _ = c["name"].(string)
		}
		fmt.Printf("%v  %v  %s  net %v  balance %v\n",
			rec["invoice_number"], rec["date"], name,
			rec["net_total"], rec["balance_due"])
	}
	return nil
}

func runAddCustomer(c *cli.Context) error {
	cfg := loadConfig(c)
	reader := bufio.NewReader(os.Stdin)

	customer, err := models.NewCustomer(
		prompt(reader, "Customer name: "),
		prompt(reader, "Customer address: "),
		prompt(reader, "Customer email: "),
	)
	if err != nil {
		return err
	}

	customers := store.NewFileStore(filepath.Join(cfg.Store.DataDir, "customers.json"))
	if err := customers.Append(models.Record{
		"name":    customer.Name,
		"address": customer.Address,
		"email":   customer.Email,
	}); err != nil {
		return err
	}

	fmt.Printf("Customer %s saved\n", customer.Name)
	return nil
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
