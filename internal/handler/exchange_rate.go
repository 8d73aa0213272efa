package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/realty-marketplace/internal/service"
	"github.com/maxviazov/realty-marketplace/pkg/response"
)

type ExchangeRateHandler struct {
	svc service.ExchangeRateService
}

func NewExchangeRateHandler(svc service.ExchangeRateService) *ExchangeRateHandler {
	return &ExchangeRateHandler{svc: svc}
}

func (h *ExchangeRateHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/exchange-rates")
	{
		g.GET("", h.list)
		g.PUT("/:currency", h.set)
	}
}

type setRateRequest struct {
	Rate float64 `json:"rate"`
}

func (h *ExchangeRateHandler) list(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}
	res, err := h.svc.ListRates(c.Request.Context(), page)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteList(c, res.Items, page.Page, page.PerPage, res.Total)
}

func (h *ExchangeRateHandler) set(c *gin.Context) {
	var req setRateRequest
	if !bindJSON(c, &req) {
		return
	}
	rate, err := h.svc.SetRate(c.Request.Context(), c.Param("currency"), req.Rate)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, rate)
}
