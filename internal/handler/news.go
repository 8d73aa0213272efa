package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/realty-marketplace/internal/pagination"
	"github.com/maxviazov/realty-marketplace/internal/service"
	"github.com/maxviazov/realty-marketplace/pkg/response"
)

type NewsHandler struct {
	svc service.NewsService
}

func NewNewsHandler(svc service.NewsService) *NewsHandler { return &NewsHandler{svc: svc} }

// Register mounts article routes. Reads are by slug and writes by id, and
// gin requires one wildcard name per segment, so both share :key.
func (h *NewsHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/news")
	{
		g.GET("", h.list)
		g.POST("", h.create)
		g.GET("/:key", h.getBySlug)
		g.POST("/:key/status", h.changeStatus)
	}
}

type newsQuery struct {
	pagination.PageRequest
	Status string `form:"status"`
}

func (h *NewsHandler) list(c *gin.Context) {
	var q newsQuery
	if !bindQuery(c, &q) {
		return
	}
	page := q.PageRequest.Normalize()
	res, err := h.svc.ListNews(c.Request.Context(), q.Status, page)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteList(c, res.Items, page.Page, page.PerPage, res.Total)
}

func (h *NewsHandler) create(c *gin.Context) {
	var req service.NewsInput
	if !bindJSON(c, &req) {
		return
	}
	n, err := h.svc.CreateNews(c.Request.Context(), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, n)
}

func (h *NewsHandler) getBySlug(c *gin.Context) {
	n, err := h.svc.GetNewsBySlug(c.Request.Context(), c.Param("key"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, n)
}

func (h *NewsHandler) changeStatus(c *gin.Context) {
	id, ok := pathID(c, "key")
	if !ok {
		return
	}
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	n, err := h.svc.ChangeNewsStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, n)
}
