package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maxviazov/realty-marketplace/internal/service"
)

// Services bundles the use cases the API exposes.
type Services struct {
	Properties    service.PropertyService
	Brokers       service.BrokerService
	News          service.NewsService
	ExchangeRates service.ExchangeRateService
}

// Register mounts health probes, docs and the versioned API on r.
func Register(r *gin.Engine, repo Pinger, svc Services) {
	h := NewHealthHandler(repo)

	r.GET(LivenessPath, h.Liveness)
	r.GET(ReadinessPath, h.Readiness)

	RegisterDocs(r)

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewPropertyHandler(svc.Properties).Register(api)
		NewBrokerHandler(svc.Brokers).Register(api)
		NewNewsHandler(svc.News).Register(api)
		NewExchangeRateHandler(svc.ExchangeRates).Register(api)
	}
}
