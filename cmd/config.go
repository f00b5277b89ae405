package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/kernel"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"shipping"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	PaymentBaseURL       string `env:"PAYMENT_BASE_URL,required"`
	PaymentAPIKey        string `env:"PAYMENT_API_KEY,required"`
	PaymentWebhookSecret string `env:"PAYMENT_WEBHOOK_SECRET,required"`
	PaymentSuccessURL    string `env:"PAYMENT_SUCCESS_URL"`
	PaymentCancelURL     string `env:"PAYMENT_CANCEL_URL"`

	ServiceFeeAmount   decimal.Decimal `env:"SERVICE_FEE_AMOUNT" envDefault:"5.00"`
	ServiceFeeCurrency string          `env:"SERVICE_FEE_CURRENCY" envDefault:"USD"`

	OriginCountries      []string `env:"ORIGIN_COUNTRIES" envDefault:"US" envSeparator:","`
	DestinationCountries []string `env:"DESTINATION_COUNTRIES" envDefault:"DE" envSeparator:","`

	MatchTTL           time.Duration `env:"MATCH_TTL" envDefault:"24h"`
	CheckoutSessionTTL time.Duration `env:"CHECKOUT_SESSION_TTL" envDefault:"23h"`
	ReaperSchedule     string        `env:"MATCH_REAPER_SCHEDULE" envDefault:"0 * * * * *"`

	OTELEndpoint string     `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	LogLevel     slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
}

// ErrCheckoutOutlivesMatch is returned when a checkout session could still be paid
// after its match was reaped.
var ErrCheckoutOutlivesMatch = errors.New("CHECKOUT_SESSION_TTL must be positive and shorter than MATCH_TTL")

// LoadConfig reads the optional dotenv files and then the process environment.
// Variables already set in the environment win over the files.
func LoadConfig(dotenvFiles ...string) (Config, error) {
	if len(dotenvFiles) > 0 {
		if err := godotenv.Load(dotenvFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load dotenv: %w", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.CheckoutSessionTTL <= 0 || cfg.CheckoutSessionTTL >= cfg.MatchTTL {
		return Config{}, fmt.Errorf("%w: %s >= %s", ErrCheckoutOutlivesMatch, cfg.CheckoutSessionTTL, cfg.MatchTTL)
	}
	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// ServiceFee returns the amount charged per confirmation.
func (c Config) ServiceFee() (kernel.Money, error) {
	return kernel.NewMoney(c.ServiceFeeAmount, c.ServiceFeeCurrency)
}

// Coverage returns the origin and destination countries the service operates in.
func (c Config) Coverage() (origins, destinations []kernel.Country, err error) {
	origins, originErr := toCountries(c.OriginCountries)
	destinations, destinationErr := toCountries(c.DestinationCountries)
	if err = errors.Join(originErr, destinationErr); err != nil {
		return nil, nil, err
	}
	return origins, destinations, nil
}

func toCountries(codes []string) ([]kernel.Country, error) {
	countries := make([]kernel.Country, 0, len(codes))
	var errList []error
	for _, code := range codes {
		country, err := kernel.NewCountry(code)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		countries = append(countries, country)
	}
	return countries, errors.Join(errList...)
}
