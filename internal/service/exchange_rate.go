package service

import (
	"context"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/maxviazov/realty-marketplace/internal/model"
	"github.com/maxviazov/realty-marketplace/internal/pagination"
	"github.com/maxviazov/realty-marketplace/internal/repository"
)

type exchangeRateService struct {
	repo repository.ExchangeRateRepository
	log  zerolog.Logger
}

func NewExchangeRateService(repo repository.ExchangeRateRepository, logger zerolog.Logger) ExchangeRateService {
	l := logger.With().Str("module", "service").Str("component", "exchange_rate").Logger()
	return &exchangeRateService{repo: repo, log: l}
}

func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func (s *exchangeRateService) SetRate(ctx context.Context, currency string, rate float64) (model.ExchangeRate, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	var ferrs []FieldError
	if !isCurrencyCode(currency) {
		ferrs = append(ferrs, FieldError{Field: "currency", Message: "must be a 3-letter ISO 4217 code"})
	}
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		ferrs = append(ferrs, FieldError{Field: "rate", Message: "must be a positive number"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.ExchangeRate{}, err
	}

	out, err := s.repo.Upsert(ctx, model.ExchangeRate{Currency: currency, Rate: rate})
	if err != nil {
		s.log.Error().Err(err).Str("currency", currency).Msg("upsert rate failed")
		return model.ExchangeRate{}, err
	}
	s.log.Info().Str("currency", currency).Float64("rate", rate).Msg("exchange rate set")
	return out, nil
}

func (s *exchangeRateService) ListRates(ctx context.Context, page pagination.PageRequest) (repository.PageResult[model.ExchangeRate], error) {
	return s.repo.List(ctx, repository.PageFromRequest(normalizePage(page)))
}
