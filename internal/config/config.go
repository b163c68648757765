package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Invoice struct {
		TaxRate        float64 `mapstructure:"tax_rate"`
		MinItemRows    int     `mapstructure:"min_item_rows"`
		CurrencySymbol string  `mapstructure:"currency_symbol"`
	} `mapstructure:"invoice"`

	Company struct {
		Name        string `mapstructure:"name"`
		Address     string `mapstructure:"address"`
		Email       string `mapstructure:"email"`
		Phone       string `mapstructure:"phone"`
		BankDetails string `mapstructure:"bank_details"`
		PolicyText  string `mapstructure:"policy_text"`
	} `mapstructure:"company"`

	Assets struct {
		LogoPath string `mapstructure:"logo_path"`
	} `mapstructure:"assets"`

	Store struct {
		DataDir string `mapstructure:"data_dir"`
	} `mapstructure:"store"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.cors_allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("server.cors_allowed_headers", []string{"Content-Type"})
	v.SetDefault("invoice.tax_rate", 0.10)
	v.SetDefault("invoice.min_item_rows", 3)
	v.SetDefault("invoice.currency_symbol", "N")
	v.SetDefault("company.name", "Fayina Luxury Couture")
	v.SetDefault("company.address", "Block E2 Abu Gidado Street, Wuye, Abuja, Nigeria")
	v.SetDefault("company.email", "fayinaluxurycouture@yahoo.com")
	v.SetDefault("company.phone", "+2349032837162")
	v.SetDefault("company.bank_details", "GTB Bank Plc, 0214413459")
	v.SetDefault("company.policy_text",
		"Payment is due within 14 days from the date of invoice. Late payments may incur "+
			"a late fee of 1.5% per month on any outstanding balance. Please ensure payments "+
			"are made to the account provided above. If you have any questions or concerns "+
			"regarding this invoice, kindly contact us at fayinaluxurycouture@yahoo.com.")
	v.SetDefault("assets.logo_path", "static/logo.png")
	v.SetDefault("store.data_dir", "data")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override common settings from environment variables
	if port := os.Getenv("PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Server.Port = n
		}
	}
	if rate := os.Getenv("INVOICE_TAX_RATE"); rate != "" {
		if f, err := strconv.ParseFloat(rate, 64); err == nil && f >= 0 {
			cfg.Invoice.TaxRate = f
		}
	}
	if logo := os.Getenv("INVOICE_LOGO_PATH"); logo != "" {
		cfg.Assets.LogoPath = logo
	}
	if dir := os.Getenv("INVOICE_DATA_DIR"); dir != "" {
		cfg.Store.DataDir = dir
	}

	return &cfg
}
