package repository

import (
	"context"

	"github.com/maxviazov/realty-marketplace/internal/model"
)

// Pinger represents a minimal readiness probe capability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// PropertyRepository declares persistence operations for listings.
// Implementations return domain errors from errors.go rather than PG codes.
type PropertyRepository interface {
	Create(ctx context.Context, p model.Property) (model.Property, error)
	GetByID(ctx context.Context, id int64) (model.Property, error)
	Update(ctx context.Context, p model.Property) (model.Property, error)
	// UpdateStatus moves a listing from one status to another; it returns
	// ErrConflict when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id int64, from, to model.PropertyStatus) (model.Property, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f model.PropertyFilter, p Page) (PageResult[model.Property], error)
}

// BrokerRepository declares persistence operations for brokers.
type BrokerRepository interface {
	Create(ctx context.Context, b model.Broker) (model.Broker, error)
	GetByID(ctx context.Context, id int64) (model.Broker, error)
	UpdateStatus(ctx context.Context, id int64, status model.BrokerStatus) (model.Broker, error)
	List(ctx context.Context, status model.BrokerStatus, p Page) (PageResult[model.Broker], error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// NewsRepository declares persistence operations for articles.
type NewsRepository interface {
	Create(ctx context.Context, n model.News) (model.News, error)
	GetByID(ctx context.Context, id int64) (model.News, error)
	GetBySlug(ctx context.Context, slug string) (model.News, error)
	UpdateStatus(ctx context.Context, id int64, status model.NewsStatus) (model.News, error)
	List(ctx context.Context, status model.NewsStatus, p Page) (PageResult[model.News], error)
}

// ExchangeRateRepository declares persistence operations for currency rates.
type ExchangeRateRepository interface {
	Upsert(ctx context.Context, r model.ExchangeRate) (model.ExchangeRate, error)
	List(ctx context.Context, p Page) (PageResult[model.ExchangeRate], error)
}
