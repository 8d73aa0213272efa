package service_test

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/realty-marketplace/internal/model"
	"github.com/maxviazov/realty-marketplace/internal/pagination"
	"github.com/maxviazov/realty-marketplace/internal/repository"
	"github.com/maxviazov/realty-marketplace/internal/service"
)

func newBrokerSvc() (service.BrokerService, *fakeBrokerRepo, *fakePropertyRepo) {
	brokers, props := newFakeBrokerRepo(), newFakePropertyRepo()
	return service.NewBrokerService(brokers, props, &fakeTx{}, zerolog.New(io.Discard)), brokers, props
}

func TestBrokerService_Create(t *testing.T) {
	svc, _, _ := newBrokerSvc()
	ctx := context.Background()

	out, err := svc.CreateBroker(ctx, service.BrokerInput{FullName: " Somchai K. ", Email: " Somchai@Example.COM "})
	require.NoError(t, err)
	assert.Equal(t, "Somchai K.", out.FullName)
	assert.Equal(t, "somchai@example.com", out.Email)
	assert.Equal(t, model.BrokerActive, out.Status)

	_, err = svc.CreateBroker(ctx, service.BrokerInput{FullName: "Other", Email: "somchai@example.com"})
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)

	_, err = svc.CreateBroker(ctx, service.BrokerInput{FullName: "X", Email: "nope", AvatarURL: "::"})
	require.ErrorIs(t, err, service.ErrInvalidInput)
	assert.ElementsMatch(t, []string{"full_name", "email", "avatar_url"}, fieldNames(err))
}

func TestBrokerService_StatusToggle(t *testing.T) {
	svc, brokers, _ := newBrokerSvc()
	ctx := context.Background()
	b, err := brokers.Create(ctx, model.Broker{FullName: "Noy", Email: "noy@example.com", Status: model.BrokerActive})
	require.NoError(t, err)

	out, err := svc.ChangeBrokerStatus(ctx, b.ID, "SUSPENDED")
	require.NoError(t, err)
	assert.Equal(t, model.BrokerSuspended, out.Status)

	out, err = svc.ChangeBrokerStatus(ctx, b.ID, "active")
	require.NoError(t, err)
	assert.Equal(t, model.BrokerActive, out.Status)

	_, err = svc.ChangeBrokerStatus(ctx, b.ID, "retired")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	_, err = svc.ChangeBrokerStatus(ctx, 77, "active")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBrokerService_ListBrokers(t *testing.T) {
	svc, brokers, _ := newBrokerSvc()
	ctx := context.Background()
	_, _ = brokers.Create(ctx, model.Broker{Email: "a@x.io", Status: model.BrokerActive})
	_, _ = brokers.Create(ctx, model.Broker{Email: "b@x.io", Status: model.BrokerSuspended})

	res, err := svc.ListBrokers(ctx, "active", pagination.PageRequest{Page: 2, PerPage: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, repository.Page{Limit: 5, Offset: 5}, brokers.lastPage)

	_, err = svc.ListBrokers(ctx, "gone", pagination.PageRequest{})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestBrokerService_ListBrokerProperties(t *testing.T) {
	svc, brokers, props := newBrokerSvc()
	ctx := context.Background()
	b, _ := brokers.Create(ctx, model.Broker{Email: "a@x.io", Status: model.BrokerActive})
	_, _ = props.Create(ctx, model.Property{Title: "pub", BrokerID: &b.ID, Status: model.PropertyPublished})
	_, _ = props.Create(ctx, model.Property{Title: "draft", BrokerID: &b.ID, Status: model.PropertyDraft})

	res, err := svc.ListBrokerProperties(ctx, b.ID, pagination.PageRequest{})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "pub", res.Items[0].Title)
	assert.Equal(t, model.PropertyFilter{BrokerID: b.ID, Status: model.PropertyPublished}, props.lastFilter)

	_, err = svc.ListBrokerProperties(ctx, 999, pagination.PageRequest{})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
