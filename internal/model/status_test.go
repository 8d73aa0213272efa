package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/realty-marketplace/internal/model"
)

func TestPropertyStatus_CanTransition(t *testing.T) {
	cases := []struct {
		from, to model.PropertyStatus
		want     bool
	}{
		{model.PropertyDraft, model.PropertyPublished, true},
		{model.PropertyDraft, model.PropertySold, false},
		{model.PropertyPublished, model.PropertyReserved, true},
		{model.PropertyPublished, model.PropertyArchived, true},
		{model.PropertyReserved, model.PropertyPublished, true},
		{model.PropertyReserved, model.PropertyArchived, false},
		{model.PropertyArchived, model.PropertyDraft, true},
		{model.PropertySold, model.PropertyPublished, false},
		{model.PropertyRented, model.PropertyArchived, false},
		{model.PropertyPublished, model.PropertyPublished, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.from.CanTransition(tc.to))
		})
	}
}

func TestBrokerAndNewsTransitions(t *testing.T) {
	assert.True(t, model.BrokerActive.CanTransition(model.BrokerSuspended))
	assert.True(t, model.BrokerSuspended.CanTransition(model.BrokerActive))
	assert.False(t, model.BrokerActive.CanTransition(model.BrokerActive))

	assert.True(t, model.NewsDraft.CanTransition(model.NewsPublished))
	assert.False(t, model.NewsDraft.CanTransition(model.NewsArchived))
	assert.True(t, model.NewsArchived.CanTransition(model.NewsDraft))
}

func TestParseAndValid(t *testing.T) {
	assert.Equal(t, model.PropertyPublished, model.ParsePropertyStatus("  Published "))
	assert.True(t, model.ParsePropertyType("HOUSE").Valid())
	assert.True(t, model.ParseDealType("rent").Valid())
	assert.False(t, model.ParseDealType("lease").Valid())
	assert.False(t, model.PropertyStatus("gone").Valid())
	assert.True(t, model.ParseNewsStatus("ARCHIVED").Valid())
	assert.False(t, model.ParseBrokerStatus("retired").Valid())
}
