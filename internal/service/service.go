// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/realty-marketplace/internal/model"
	"github.com/maxviazov/realty-marketplace/internal/pagination"
	"github.com/maxviazov/realty-marketplace/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidTransition rejects a status change the workflow does not allow (maps to HTTP 409).
var ErrInvalidTransition = errors.New("invalid status transition")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an aggregated validation error, or nil when fe is empty.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	var v *invalidInputError
	if errors.As(err, &v) {
		return v.Fields()
	}
	return nil
}

// PropertyInput is the writable part of a listing.
type PropertyInput struct {
	Title       string   `json:"title" validate:"required,min=3,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Price       int64    `json:"price" validate:"min=0"`
	Currency    string   `json:"currency" validate:"required,len=3,alpha"`
	City        string   `json:"city" validate:"required,max=100"`
	Address     string   `json:"address" validate:"max=300"`
	AreaSqm     int      `json:"area_sqm" validate:"min=0"`
	Rooms       int      `json:"rooms" validate:"min=0,max=100"`
	Type        string   `json:"type" validate:"required"`
	Deal        string   `json:"deal" validate:"required"`
	BrokerID    *int64   `json:"broker_id" validate:"omitempty,gt=0"`
	ImageURLs   []string `json:"image_urls" validate:"max=30,dive,url"`
}

// BrokerInput is the writable part of a broker profile.
type BrokerInput struct {
	FullName  string `json:"full_name" validate:"required,min=2,max=120"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"max=40"`
	Agency    string `json:"agency" validate:"max=120"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

// NewsInput is the writable part of an article. Slug is derived from the
// title when empty.
type NewsInput struct {
	Slug     string `json:"slug" validate:"omitempty,max=120"`
	Title    string `json:"title" validate:"required,min=3,max=200"`
	Body     string `json:"body"`
	CoverURL string `json:"cover_url" validate:"omitempty,url"`
	Publish  bool   `json:"publish"`
}

// PropertyService defines listing use cases.
type PropertyService interface {
	CreateProperty(ctx context.Context, in PropertyInput) (model.Property, error)
	GetProperty(ctx context.Context, id int64) (model.Property, error)
	UpdateProperty(ctx context.Context, id int64, in PropertyInput) (model.Property, error)
	ChangePropertyStatus(ctx context.Context, id int64, status string) (model.Property, error)
	DeleteProperty(ctx context.Context, id int64) error
	ListProperties(ctx context.Context, f model.PropertyFilter, page pagination.PageRequest) (repository.PageResult[model.Property], error)
}

// BrokerService defines broker directory use cases.
type BrokerService interface {
	CreateBroker(ctx context.Context, in BrokerInput) (model.Broker, error)
	GetBroker(ctx context.Context, id int64) (model.Broker, error)
	ChangeBrokerStatus(ctx context.Context, id int64, status string) (model.Broker, error)
	ListBrokers(ctx context.Context, status string, page pagination.PageRequest) (repository.PageResult[model.Broker], error)
	ListBrokerProperties(ctx context.Context, id int64, page pagination.PageRequest) (repository.PageResult[model.Property], error)
}

// NewsService defines editorial use cases.
type NewsService interface {
	CreateNews(ctx context.Context, in NewsInput) (model.News, error)
	GetNewsBySlug(ctx context.Context, slug string) (model.News, error)
	ChangeNewsStatus(ctx context.Context, id int64, status string) (model.News, error)
	ListNews(ctx context.Context, status string, page pagination.PageRequest) (repository.PageResult[model.News], error)
}

// ExchangeRateService defines currency rate use cases.
type ExchangeRateService interface {
	SetRate(ctx context.Context, currency string, rate float64) (model.ExchangeRate, error)
	ListRates(ctx context.Context, page pagination.PageRequest) (repository.PageResult[model.ExchangeRate], error)
}
