package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/realty-marketplace/internal/pagination"
	"github.com/maxviazov/realty-marketplace/internal/service"
	"github.com/maxviazov/realty-marketplace/pkg/response"
)

type BrokerHandler struct {
	svc service.BrokerService
}

func NewBrokerHandler(svc service.BrokerService) *BrokerHandler { return &BrokerHandler{svc: svc} }

func (h *BrokerHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/brokers")
	{
		g.GET("", h.list)
		g.POST("", h.create)
		g.GET("/:id", h.getByID)
		g.POST("/:id/status", h.changeStatus)
		// nested under the broker so the same :id wildcard is reused
		g.GET("/:id/properties", h.listProperties)
	}
}

type brokerQuery struct {
	pagination.PageRequest
	Status string `form:"status"`
}

func (h *BrokerHandler) list(c *gin.Context) {
	var q brokerQuery
	if !bindQuery(c, &q) {
		return
	}
	page := q.PageRequest.Normalize()
	res, err := h.svc.ListBrokers(c.Request.Context(), q.Status, page)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteList(c, res.Items, page.Page, page.PerPage, res.Total)
}

func (h *BrokerHandler) create(c *gin.Context) {
	var req service.BrokerInput
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.svc.CreateBroker(c.Request.Context(), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, b)
}

func (h *BrokerHandler) getByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	b, err := h.svc.GetBroker(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, b)
}

func (h *BrokerHandler) changeStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.svc.ChangeBrokerStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, b)
}

func (h *BrokerHandler) listProperties(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, ok := bindPage(c)
	if !ok {
		return
	}
	res, err := h.svc.ListBrokerProperties(c.Request.Context(), id, page)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteList(c, res.Items, page.Page, page.PerPage, res.Total)
}
