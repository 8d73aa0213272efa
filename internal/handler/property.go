package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/realty-marketplace/internal/model"
	"github.com/maxviazov/realty-marketplace/internal/pagination"
	"github.com/maxviazov/realty-marketplace/internal/service"
	"github.com/maxviazov/realty-marketplace/pkg/response"
)

type PropertyHandler struct {
	svc service.PropertyService
}

func NewPropertyHandler(svc service.PropertyService) *PropertyHandler {
	return &PropertyHandler{svc: svc}
}

func (h *PropertyHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/properties")
	{
		g.GET("", h.list)
		g.POST("", h.create)
		g.GET("/:id", h.getByID)
		g.PUT("/:id", h.update)
		g.DELETE("/:id", h.remove)
		g.POST("/:id/status", h.changeStatus)
	}
}

type propertyQuery struct {
	pagination.PageRequest
	City     string `form:"city"`
	Type     string `form:"type"`
	Deal     string `form:"deal"`
	Status   string `form:"status"`
	MinPrice int64  `form:"min_price" validate:"min=0"`
	MaxPrice int64  `form:"max_price" validate:"min=0"`
}

func (q propertyQuery) filter() model.PropertyFilter {
	return model.PropertyFilter{
		City:     q.City,
		Type:     model.ParsePropertyType(q.Type),
		Deal:     model.ParseDealType(q.Deal),
		Status:   model.ParsePropertyStatus(q.Status),
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
	}
}

func (h *PropertyHandler) list(c *gin.Context) {
	var q propertyQuery
	if !bindQuery(c, &q) {
		return
	}
	page := q.PageRequest.Normalize()
	res, err := h.svc.ListProperties(c.Request.Context(), q.filter(), page)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteList(c, res.Items, page.Page, page.PerPage, res.Total)
}

func (h *PropertyHandler) create(c *gin.Context) {
	var req service.PropertyInput
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.svc.CreateProperty(c.Request.Context(), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, p)
}

func (h *PropertyHandler) getByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.GetProperty(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, p)
}

func (h *PropertyHandler) update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.PropertyInput
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.svc.UpdateProperty(c.Request.Context(), id, req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, p)
}

func (h *PropertyHandler) remove(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteProperty(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PropertyHandler) changeStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.svc.ChangePropertyStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, p)
}
