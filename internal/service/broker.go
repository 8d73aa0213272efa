package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/maxviazov/realty-marketplace/internal/model"
	"github.com/maxviazov/realty-marketplace/internal/pagination"
	"github.com/maxviazov/realty-marketplace/internal/repository"
)

type brokerService struct {
	repo       repository.BrokerRepository
	properties repository.PropertyRepository
	tx         repository.TxManager
	log        zerolog.Logger
}

func NewBrokerService(repo repository.BrokerRepository, properties repository.PropertyRepository, tx repository.TxManager, logger zerolog.Logger) BrokerService {
	l := logger.With().Str("module", "service").Str("component", "broker").Logger()
	return &brokerService{repo: repo, properties: properties, tx: tx, log: l}
}

func (s *brokerService) CreateBroker(ctx context.Context, in BrokerInput) (model.Broker, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Agency = strings.TrimSpace(in.Agency)

	if ferrs := checkStruct(&in); len(ferrs) > 0 {
		s.log.Debug().Interface("field_errors", ferrs).Msg("broker validation failed")
		return model.Broker{}, NewInvalidInputError(ferrs)
	}

	out, err := s.repo.Create(ctx, model.Broker{
		FullName:  in.FullName,
		Email:     in.Email,
		Phone:     in.Phone,
		Agency:    in.Agency,
		AvatarURL: in.AvatarURL,
		Status:    model.BrokerActive,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("create broker failed")
		return model.Broker{}, err
	}
	s.log.Info().Int64("broker_id", out.ID).Msg("broker created")
	return out, nil
}

func (s *brokerService) GetBroker(ctx context.Context, id int64) (model.Broker, error) {
	if err := positiveID(id); err != nil {
		return model.Broker{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *brokerService) ChangeBrokerStatus(ctx context.Context, id int64, status string) (model.Broker, error) {
	next := model.ParseBrokerStatus(status)
	var ferrs []FieldError
	if id <= 0 {
		ferrs = append(ferrs, FieldError{Field: "id", Message: "must be > 0"})
	}
	if !next.Valid() {
		ferrs = append(ferrs, FieldError{Field: "status", Message: "must be one of active, suspended"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.Broker{}, err
	}

	var out model.Broker
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current.Status == next {
			out = current
			return nil
		}
		if !current.Status.CanTransition(next) {
			return ErrInvalidTransition
		}
		out, err = s.repo.UpdateStatus(ctx, id, next)
		return err
	})
	if err != nil {
		return model.Broker{}, err
	}
	s.log.Info().Int64("broker_id", id).Str("status", string(out.Status)).Msg("broker status changed")
	return out, nil
}

func (s *brokerService) ListBrokers(ctx context.Context, status string, page pagination.PageRequest) (repository.PageResult[model.Broker], error) {
	st := model.ParseBrokerStatus(status)
	if st != "" && !st.Valid() {
		return repository.PageResult[model.Broker]{}, NewInvalidInputError([]FieldError{{Field: "status", Message: "must be one of active, suspended"}})
	}
	p := repository.PageFromRequest(normalizePage(page))
	res, err := s.repo.List(ctx, st, p)
	if err != nil {
		s.log.Error().Err(err).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list brokers failed")
		return repository.PageResult[model.Broker]{}, err
	}
	return res, nil
}

// ListBrokerProperties returns the broker's published listings, newest first.
func (s *brokerService) ListBrokerProperties(ctx context.Context, id int64, page pagination.PageRequest) (repository.PageResult[model.Property], error) {
	if err := positiveID(id); err != nil {
		return repository.PageResult[model.Property]{}, err
	}
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return repository.PageResult[model.Property]{}, err
	}
	if !ok {
		return repository.PageResult[model.Property]{}, repository.ErrNotFound
	}
	f := model.PropertyFilter{BrokerID: id, Status: model.PropertyPublished}
	return s.properties.List(ctx, f, repository.PageFromRequest(normalizePage(page)))
}
