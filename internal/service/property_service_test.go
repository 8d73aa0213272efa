package service_test

import (
	"context"
	"errors"
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

func validPropertyInput() service.PropertyInput {
	return service.PropertyInput{
		Title:    "  Riverside apartment ",
		Price:    250_000_000,
		Currency: "lak",
		City:     "Vientiane",
		AreaSqm:  85,
		Rooms:    3,
		Type:     "Apartment",
		Deal:     "sale",
	}
}

func newPropertySvc() (service.PropertyService, *fakePropertyRepo, *fakeBrokerRepo, *fakeTx) {
	props, brokers, tx := newFakePropertyRepo(), newFakeBrokerRepo(), &fakeTx{}
	return service.NewPropertyService(props, brokers, tx, zerolog.New(io.Discard)), props, brokers, tx
}

func fieldNames(err error) []string {
	var out []string
	for _, fe := range service.FieldErrors(err) {
		out = append(out, fe.Field)
	}
	return out
}

func TestPropertyService_Create_NormalizesAndDrafts(t *testing.T) {
	svc, _, _, tx := newPropertySvc()
	out, err := svc.CreateProperty(context.Background(), validPropertyInput())
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)
	assert.Equal(t, "Riverside apartment", out.Title)
	assert.Equal(t, "LAK", out.Currency)
	assert.Equal(t, model.PropertyApartment, out.Type)
	assert.Equal(t, model.PropertyDraft, out.Status)
	assert.Equal(t, 1, tx.calls)
}

func TestPropertyService_Create_Validation(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*service.PropertyInput)
		wantField string
	}{
		{"empty title", func(in *service.PropertyInput) { in.Title = "   " }, "title"},
		{"negative price", func(in *service.PropertyInput) { in.Price = -1 }, "price"},
		{"bad currency", func(in *service.PropertyInput) { in.Currency = "US" }, "currency"},
		{"missing city", func(in *service.PropertyInput) { in.City = "" }, "city"},
		{"unknown type", func(in *service.PropertyInput) { in.Type = "castle" }, "type"},
		{"unknown deal", func(in *service.PropertyInput) { in.Deal = "swap" }, "deal"},
		{"bad image url", func(in *service.PropertyInput) { in.ImageURLs = []string{"not a url"} }, "image_urls[0]"},
		{"zero broker id", func(in *service.PropertyInput) { zero := int64(0); in.BrokerID = &zero }, "broker_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, _, _ := newPropertySvc()
			in := validPropertyInput()
			tc.mutate(&in)
			_, err := svc.CreateProperty(context.Background(), in)
			require.ErrorIs(t, err, service.ErrInvalidInput)
			assert.Contains(t, fieldNames(err), tc.wantField)
		})
	}
}

func TestPropertyService_Create_UnknownBroker(t *testing.T) {
	svc, _, brokers, _ := newPropertySvc()
	in := validPropertyInput()
	missing := int64(7)
	in.BrokerID = &missing
	_, err := svc.CreateProperty(context.Background(), in)
	require.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Equal(t, []string{"broker_id"}, fieldNames(err))

	b, err := brokers.Create(context.Background(), model.Broker{FullName: "Noy", Email: "noy@example.com"})
	require.NoError(t, err)
	in.BrokerID = &b.ID
	out, err := svc.CreateProperty(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, b.ID, *out.BrokerID)
}

func TestPropertyService_Create_RepoErrorPassesThrough(t *testing.T) {
	svc, props, _, _ := newPropertySvc()
	props.createErr = repository.ErrConflict
	_, err := svc.CreateProperty(context.Background(), validPropertyInput())
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestPropertyService_UpdateKeepsStatus(t *testing.T) {
	svc, _, _, _ := newPropertySvc()
	ctx := context.Background()
	created, err := svc.CreateProperty(ctx, validPropertyInput())
	require.NoError(t, err)
	_, err = svc.ChangePropertyStatus(ctx, created.ID, "published")
	require.NoError(t, err)

	in := validPropertyInput()
	in.Title = "Renovated apartment"
	out, err := svc.UpdateProperty(ctx, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Renovated apartment", out.Title)
	assert.Equal(t, model.PropertyPublished, out.Status)

	_, err = svc.UpdateProperty(ctx, 99, in)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = svc.UpdateProperty(ctx, 0, in)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestPropertyService_StatusWorkflow(t *testing.T) {
	svc, _, _, _ := newPropertySvc()
	ctx := context.Background()
	created, err := svc.CreateProperty(ctx, validPropertyInput())
	require.NoError(t, err)

	_, err = svc.ChangePropertyStatus(ctx, created.ID, "sold")
	assert.ErrorIs(t, err, service.ErrInvalidTransition, "draft cannot jump to sold")

	steps := []model.PropertyStatus{model.PropertyPublished, model.PropertyReserved, model.PropertySold}
	for _, s := range steps {
		out, err := svc.ChangePropertyStatus(ctx, created.ID, " "+string(s)+" ")
		require.NoError(t, err, "to %s", s)
		assert.Equal(t, s, out.Status)
	}

	_, err = svc.ChangePropertyStatus(ctx, created.ID, "published")
	assert.ErrorIs(t, err, service.ErrInvalidTransition, "sold is terminal")

	same, err := svc.ChangePropertyStatus(ctx, created.ID, "sold")
	require.NoError(t, err, "re-applying the current status is a no-op")
	assert.Equal(t, model.PropertySold, same.Status)

	_, err = svc.ChangePropertyStatus(ctx, created.ID, "haunted")
	assert.Equal(t, []string{"status"}, fieldNames(err))
	_, err = svc.ChangePropertyStatus(ctx, 404, "published")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPropertyService_Delete(t *testing.T) {
	svc, props, _, _ := newPropertySvc()
	ctx := context.Background()
	created, err := svc.CreateProperty(ctx, validPropertyInput())
	require.NoError(t, err)
	require.NoError(t, svc.DeleteProperty(ctx, created.ID))
	assert.Empty(t, props.items)
	assert.ErrorIs(t, svc.DeleteProperty(ctx, created.ID), repository.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteProperty(ctx, -1), service.ErrInvalidInput)
}

func TestPropertyService_List_NormalizesPageAndValidatesFilter(t *testing.T) {
	svc, props, _, _ := newPropertySvc()
	ctx := context.Background()

	_, err := svc.ListProperties(ctx, model.PropertyFilter{}, pagination.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, repository.Page{Limit: pagination.DefaultPerPage, Offset: 0}, props.lastPage)

	_, err = svc.ListProperties(ctx, model.PropertyFilter{City: "Pakse"}, pagination.PageRequest{Page: 3, PerPage: 500})
	require.NoError(t, err)
	assert.Equal(t, repository.Page{Limit: pagination.MaxPerPage, Offset: 2 * pagination.MaxPerPage}, props.lastPage)
	assert.Equal(t, "Pakse", props.lastFilter.City)

	_, err = svc.ListProperties(ctx, model.PropertyFilter{Type: "castle", Deal: "swap", MinPrice: 10, MaxPrice: 5}, pagination.PageRequest{})
	require.True(t, errors.Is(err, service.ErrInvalidInput))
	assert.ElementsMatch(t, []string{"type", "deal", "min_price"}, fieldNames(err))
}
