package handler_test

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/realty-marketplace/internal/handler"
	"github.com/maxviazov/realty-marketplace/internal/model"
	"github.com/maxviazov/realty-marketplace/internal/pagination"
	"github.com/maxviazov/realty-marketplace/internal/repository"
	"github.com/maxviazov/realty-marketplace/internal/service"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

// stubPropertyService records the last inputs and returns canned outcomes.
type stubPropertyService struct {
	property   model.Property
	list       repository.PageResult[model.Property]
	err        error
	lastID     int64
	lastStatus string
	lastInput  service.PropertyInput
	lastFilter model.PropertyFilter
	lastPage   pagination.PageRequest
}

func (s *stubPropertyService) CreateProperty(_ context.Context, in service.PropertyInput) (model.Property, error) {
	s.lastInput = in
	return s.property, s.err
}

func (s *stubPropertyService) GetProperty(_ context.Context, id int64) (model.Property, error) {
	s.lastID = id
	return s.property, s.err
}

func (s *stubPropertyService) UpdateProperty(_ context.Context, id int64, in service.PropertyInput) (model.Property, error) {
	s.lastID, s.lastInput = id, in
	return s.property, s.err
}

func (s *stubPropertyService) ChangePropertyStatus(_ context.Context, id int64, status string) (model.Property, error) {
	s.lastID, s.lastStatus = id, status
	return s.property, s.err
}

func (s *stubPropertyService) DeleteProperty(_ context.Context, id int64) error {
	s.lastID = id
	return s.err
}

func (s *stubPropertyService) ListProperties(_ context.Context, f model.PropertyFilter, p pagination.PageRequest) (repository.PageResult[model.Property], error) {
	s.lastFilter, s.lastPage = f, p
	return s.list, s.err
}

type stubBrokerService struct {
	broker     model.Broker
	brokers    repository.PageResult[model.Broker]
	properties repository.PageResult[model.Property]
	err        error
	lastID     int64
	lastStatus string
	lastPage   pagination.PageRequest
}

func (s *stubBrokerService) CreateBroker(context.Context, service.BrokerInput) (model.Broker, error) {
	return s.broker, s.err
}

func (s *stubBrokerService) GetBroker(_ context.Context, id int64) (model.Broker, error) {
	s.lastID = id
	return s.broker, s.err
}

func (s *stubBrokerService) ChangeBrokerStatus(_ context.Context, id int64, status string) (model.Broker, error) {
	s.lastID, s.lastStatus = id, status
	return s.broker, s.err
}

func (s *stubBrokerService) ListBrokers(_ context.Context, status string, p pagination.PageRequest) (repository.PageResult[model.Broker], error) {
	s.lastStatus, s.lastPage = status, p
	return s.brokers, s.err
}

func (s *stubBrokerService) ListBrokerProperties(_ context.Context, id int64, p pagination.PageRequest) (repository.PageResult[model.Property], error) {
	s.lastID, s.lastPage = id, p
	return s.properties, s.err
}

type stubNewsService struct {
	news     model.News
	list     repository.PageResult[model.News]
	err      error
	lastID   int64
	lastSlug string
}

func (s *stubNewsService) CreateNews(context.Context, service.NewsInput) (model.News, error) {
	return s.news, s.err
}

func (s *stubNewsService) GetNewsBySlug(_ context.Context, slug string) (model.News, error) {
	s.lastSlug = slug
	return s.news, s.err
}

func (s *stubNewsService) ChangeNewsStatus(_ context.Context, id int64, _ string) (model.News, error) {
	s.lastID = id
	return s.news, s.err
}

func (s *stubNewsService) ListNews(context.Context, string, pagination.PageRequest) (repository.PageResult[model.News], error) {
	return s.list, s.err
}

type stubRateService struct {
	rate         model.ExchangeRate
	err          error
	lastCurrency string
	lastRate     float64
}

func (s *stubRateService) SetRate(_ context.Context, currency string, rate float64) (model.ExchangeRate, error) {
	s.lastCurrency, s.lastRate = currency, rate
	return s.rate, s.err
}

func (s *stubRateService) ListRates(context.Context, pagination.PageRequest) (repository.PageResult[model.ExchangeRate], error) {
	return repository.PageResult[model.ExchangeRate]{}, s.err
}

type stubs struct {
	properties *stubPropertyService
	brokers    *stubBrokerService
	news       *stubNewsService
	rates      *stubRateService
}

func newRouter(p handler.Pinger) (*gin.Engine, *stubs) {
	gin.SetMode(gin.TestMode)
	s := &stubs{
		properties: &stubPropertyService{},
		brokers:    &stubBrokerService{},
		news:       &stubNewsService{},
		rates:      &stubRateService{},
	}
	r := gin.New()
	handler.Register(r, p, handler.Services{
		Properties:    s.properties,
		Brokers:       s.brokers,
		News:          s.news,
		ExchangeRates: s.rates,
	})
	return r, s
}
