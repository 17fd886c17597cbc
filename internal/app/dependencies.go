package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/service/auth"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	"github.com/vladislavdragonenkov/storefront/internal/storage/postgres"
)

// Dependencies содержит все зависимости приложения.
type Dependencies struct {
	Orders   domain.OrderRepository
	Users    domain.UserRepository
	Products domain.ProductRepository
	Auth     auth.Service
	Metrics  *metrics.OrderMetrics
	Logger   *log.Entry

	// Store не nil только при работе на PostgreSQL.
	Store *postgres.Store
	// Producer не nil только при заданных брокерах Kafka.
	Producer *kafka.Producer
}

// NewDependencies собирает зависимости по конфигурации. DSN выбирается
// профилем окружения один раз; пустой DSN даёт in-memory хранилище.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{
		Metrics: metrics.NewOrderMetrics(),
		Logger:  logger,
	}

	if dsn := cfg.DSN(); dsn != "" {
		store, err := postgres.Open(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		deps.Store = store
		deps.Orders = postgres.NewOrderRepository(store)
		deps.Users = postgres.NewUserRepository(store)
		deps.Products = postgres.NewProductRepository(store)
		logger.WithField("env", cfg.Env).Info("postgres storage initialized")
	} else {
		memStore := memory.NewStore()
		deps.Orders = memory.NewOrderRepository(memStore)
		deps.Users = memory.NewUserRepository(memStore)
		deps.Products = memory.NewProductRepository(memStore)
		logger.Warn("no DSN configured, falling back to in-memory storage")
	}

	deps.Auth = auth.NewService(deps.Users, cfg.JWTSecret, cfg.TokenTTL, logger.WithField("component", "auth"))

	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		} else {
			deps.Producer = producer
			logger.WithField("brokers", cfg.KafkaBrokers).Info("kafka producer initialized")
		}
	}

	return deps, nil
}

// Close освобождает внешние ресурсы.
func (d *Dependencies) Close() {
	if d.Producer != nil {
		if err := d.Producer.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close kafka producer")
		}
	}
	if d.Store != nil {
		if err := d.Store.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close postgres store")
		}
	}
}
