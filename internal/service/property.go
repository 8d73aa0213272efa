package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/realty-marketplace/internal/model"
	"github.com/maxviazov/realty-marketplace/internal/pagination"
	"github.com/maxviazov/realty-marketplace/internal/repository"
)

// propertyService holds listing use-case logic: validation + orchestration, no transport / SQL details.
type propertyService struct {
	repo    repository.PropertyRepository
	brokers repository.BrokerRepository
	tx      repository.TxManager
	log     zerolog.Logger
}

func NewPropertyService(repo repository.PropertyRepository, brokers repository.BrokerRepository, tx repository.TxManager, logger zerolog.Logger) PropertyService {
	l := logger.With().Str("module", "service").Str("component", "property").Logger()
	return &propertyService{repo: repo, brokers: brokers, tx: tx, log: l}
}

// validateProperty trims in place and returns the typed enums alongside any field errors.
func validateProperty(in *PropertyInput) (model.PropertyType, model.DealType, []FieldError) {
	in.Title = strings.TrimSpace(in.Title)
	in.City = strings.TrimSpace(in.City)
	in.Address = strings.TrimSpace(in.Address)
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))

	ferrs := checkStruct(in)
	typ := model.ParsePropertyType(in.Type)
	if in.Type != "" && !typ.Valid() {
		ferrs = append(ferrs, FieldError{Field: "type", Message: "must be one of apartment, house, land, commercial"})
	}
	deal := model.ParseDealType(in.Deal)
	if in.Deal != "" && !deal.Valid() {
		ferrs = append(ferrs, FieldError{Field: "deal", Message: "must be one of sale, rent"})
	}
	return typ, deal, ferrs
}

func toProperty(in PropertyInput, typ model.PropertyType, deal model.DealType) model.Property {
	return model.Property{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Currency:    in.Currency,
		City:        in.City,
		Address:     in.Address,
		AreaSqm:     in.AreaSqm,
		Rooms:       in.Rooms,
		Type:        typ,
		Deal:        deal,
		BrokerID:    in.BrokerID,
		ImageURLs:   in.ImageURLs,
	}
}

// checkBroker rejects listings assigned to a broker that does not exist.
func (s *propertyService) checkBroker(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	ok, err := s.brokers.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return NewInvalidInputError([]FieldError{{Field: "broker_id", Message: "broker does not exist"}})
	}
	return nil
}

func (s *propertyService) CreateProperty(ctx context.Context, in PropertyInput) (model.Property, error) {
	start := time.Now()
	typ, deal, ferrs := validateProperty(&in)
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("property validation failed")
		return model.Property{}, err
	}

	p := toProperty(in, typ, deal)
	p.Status = model.PropertyDraft

	var out model.Property
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.checkBroker(ctx, p.BrokerID); err != nil {
			return err
		}
		var err error
		out, err = s.repo.Create(ctx, p)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrInvalidInput) {
			s.log.Error().Err(err).Str("title", p.Title).Msg("create property failed")
		}
		return model.Property{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("property_id", out.ID).Msg("property created")
	return out, nil
}

func (s *propertyService) GetProperty(ctx context.Context, id int64) (model.Property, error) {
	if err := positiveID(id); err != nil {
		return model.Property{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *propertyService) UpdateProperty(ctx context.Context, id int64, in PropertyInput) (model.Property, error) {
	if err := positiveID(id); err != nil {
		return model.Property{}, err
	}
	typ, deal, ferrs := validateProperty(&in)
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.Property{}, err
	}

	p := toProperty(in, typ, deal)
	p.ID = id

	var out model.Property
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.checkBroker(ctx, p.BrokerID); err != nil {
			return err
		}
		var err error
		out, err = s.repo.Update(ctx, p)
		return err
	})
	if err != nil {
		return model.Property{}, err
	}
	s.log.Info().Int64("property_id", id).Msg("property updated")
	return out, nil
}

// ChangePropertyStatus enforces the listing workflow. The repository
// compare-and-set makes a concurrent change surface as ErrConflict.
func (s *propertyService) ChangePropertyStatus(ctx context.Context, id int64, status string) (model.Property, error) {
	next := model.ParsePropertyStatus(status)
	var ferrs []FieldError
	if id <= 0 {
		ferrs = append(ferrs, FieldError{Field: "id", Message: "must be > 0"})
	}
	if !next.Valid() {
		ferrs = append(ferrs, FieldError{Field: "status", Message: "unknown property status"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.Property{}, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.Property{}, err
	}
	if current.Status == next {
		return current, nil
	}
	if !current.Status.CanTransition(next) {
		s.log.Debug().Int64("property_id", id).Str("from", string(current.Status)).Str("to", string(next)).Msg("transition rejected")
		return model.Property{}, ErrInvalidTransition
	}
	out, err := s.repo.UpdateStatus(ctx, id, current.Status, next)
	if err != nil {
		return model.Property{}, err
	}
	s.log.Info().Int64("property_id", id).Str("from", string(current.Status)).Str("to", string(next)).Msg("property status changed")
	return out, nil
}

func (s *propertyService) DeleteProperty(ctx context.Context, id int64) error {
	if err := positiveID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("property_id", id).Msg("property deleted")
	return nil
}

func validateFilter(f model.PropertyFilter) []FieldError {
	var ferrs []FieldError
	if f.Type != "" && !f.Type.Valid() {
		ferrs = append(ferrs, FieldError{Field: "type", Message: "unknown property type"})
	}
	if f.Deal != "" && !f.Deal.Valid() {
		ferrs = append(ferrs, FieldError{Field: "deal", Message: "unknown deal type"})
	}
	if f.Status != "" && !f.Status.Valid() {
		ferrs = append(ferrs, FieldError{Field: "status", Message: "unknown property status"})
	}
	if f.MinPrice < 0 {
		ferrs = append(ferrs, FieldError{Field: "min_price", Message: "must be >= 0"})
	}
	if f.MaxPrice < 0 {
		ferrs = append(ferrs, FieldError{Field: "max_price", Message: "must be >= 0"})
	}
	if f.MaxPrice > 0 && f.MinPrice > f.MaxPrice {
		ferrs = append(ferrs, FieldError{Field: "min_price", Message: "must not exceed max_price"})
	}
	return ferrs
}

func (s *propertyService) ListProperties(ctx context.Context, f model.PropertyFilter, page pagination.PageRequest) (repository.PageResult[model.Property], error) {
	if err := NewInvalidInputError(validateFilter(f)); err != nil {
		return repository.PageResult[model.Property]{}, err
	}
	p := repository.PageFromRequest(normalizePage(page))
	res, err := s.repo.List(ctx, f, p)
	if err != nil {
		s.log.Error().Err(err).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list properties failed")
		return repository.PageResult[model.Property]{}, err
	}
	return res, nil
}
