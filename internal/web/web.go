// Package web serves the localized, server-rendered site. Pages read their
// data from the listing API through Client and rely on gate.Middleware for
// the session and the resolved locale.
package web

import (
	"context"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/rs/zerolog"

	"github.com/maxviazov/realty-marketplace/internal/config"
	"github.com/maxviazov/realty-marketplace/internal/gate"
	"github.com/maxviazov/realty-marketplace/internal/handler"
	"github.com/maxviazov/realty-marketplace/internal/locale"
	"github.com/maxviazov/realty-marketplace/internal/model"
	"github.com/maxviazov/realty-marketplace/internal/pagination"
	"github.com/maxviazov/realty-marketplace/internal/repository"
	"github.com/maxviazov/realty-marketplace/pkg/response"
)

// Listings is the read side of the listing API the pages need.
type Listings interface {
	PublishedProperties(ctx context.Context, q PropertyQuery, page pagination.PageRequest) (Listing[model.Property], error)
	Properties(ctx context.Context, page pagination.PageRequest) (Listing[model.Property], error)
	Property(ctx context.Context, id int64) (model.Property, error)
	ActiveBrokers(ctx context.Context, page pagination.PageRequest) (Listing[model.Broker], error)
	Brokers(ctx context.Context, page pagination.PageRequest) (Listing[model.Broker], error)
	PublishedNews(ctx context.Context, page pagination.PageRequest) (Listing[model.News], error)
	News(ctx context.Context, page pagination.PageRequest) (Listing[model.News], error)
	Article(ctx context.Context, slug string) (model.News, error)
}

var _ Listings = (*Client)(nil)

// StaticPrefix serves the embedded stylesheet.
const StaticPrefix = "/static"

const (
	homePropertyCount = 6
	homeNewsCount     = 3
)

// Site renders the pages.
type Site struct {
	api    Listings
	cfg    config.WebConfig
	pages  map[string]*template.Template
	logger zerolog.Logger
}

func New(api Listings, cfg config.WebConfig, logger zerolog.Logger) (*Site, error) {
	pages, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Site{
		api:    api,
		cfg:    cfg,
		pages:  pages,
		logger: logger.With().Str("module", "web").Logger(),
	}, nil
}

// Register mounts the site root, one route group per locale and the static
// assets.
func (s *Site) Register(r *gin.Engine) {
	static, err := fs.Sub(staticFS, "static")
	if err == nil {
		r.StaticFS(StaticPrefix, http.FS(static))
	}

	r.GET("/", s.root)

	for _, l := range locale.Supported() {
		g := r.Group("/" + string(l))
		if s.cfg.Gzip {
			g.Use(gzip.Gzip(gzip.DefaultCompression))
		}
		g.GET("/", s.home)
		g.GET("/properties", s.properties)
		g.GET("/properties/:id", s.property)
		g.GET("/brokers", s.brokers)
		g.GET("/news", s.news)
		g.GET("/news/:slug", s.article)
		g.GET("/admin", s.admin)
		g.GET("/login", s.login)
		g.GET("/register", s.register)
		g.GET("/unauthorized", s.unauthorized)
		g.GET("/language/:target", s.switchLanguage)
	}
}

// NotFound renders the localized 404 page; API paths get the JSON error
// shape instead.
func (s *Site) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, handler.APIV1Prefix) {
		response.WriteError(c, repository.ErrNotFound)
		return
	}
	s.fail(c, http.StatusNotFound, "error.not_found")
}

func (s *Site) root(c *gin.Context) {
	c.Redirect(http.StatusFound, "/"+string(locale.Preferred(c.Request))+"/")
}

func (s *Site) home(c *gin.Context) {
	ctx := c.Request.Context()
	props, err := s.api.PublishedProperties(ctx, PropertyQuery{}, pagination.PageRequest{Page: 1, PerPage: homePropertyCount})
	if err != nil {
		s.upstream(c, err)
		return
	}
	news, err := s.api.PublishedNews(ctx, pagination.PageRequest{Page: 1, PerPage: homeNewsCount})
	if err != nil {
		s.upstream(c, err)
		return
	}
	s.render(c, http.StatusOK, "home", "", gin.H{
		"Properties": props.Items,
		"News":       news.Items,
	})
}

func (s *Site) properties(c *gin.Context) {
	q := PropertyQuery{
		City:     c.Query("city"),
		Type:     c.Query("type"),
		Deal:     c.Query("deal"),
		MinPrice: c.Query("min_price"),
		MaxPrice: c.Query("max_price"),
	}
	page := pageFromQuery(c)
	res, err := s.api.PublishedProperties(c.Request.Context(), q, page)
	if err != nil {
		s.upstream(c, err)
		return
	}
	v := s.view(c)
	s.render(c, http.StatusOK, "properties", v.T("nav.properties"), gin.H{
		"Query": q,
		"Items": res.Items,
		"Pager": newPager(c.Request.URL.Path, q.values(), res.Meta),
	})
}

func (s *Site) property(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		s.fail(c, http.StatusNotFound, "error.not_found")
		return
	}
	p, err := s.api.Property(c.Request.Context(), id)
	if err != nil {
		s.upstream(c, err)
		return
	}
	// Drafts and archived listings are reachable through the API only.
	if p.Status != model.PropertyPublished {
		s.fail(c, http.StatusNotFound, "error.not_found")
		return
	}
	s.render(c, http.StatusOK, "property", p.Title, p)
}

func (s *Site) brokers(c *gin.Context) {
	res, err := s.api.ActiveBrokers(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		s.upstream(c, err)
		return
	}
	v := s.view(c)
	s.render(c, http.StatusOK, "brokers", v.T("nav.brokers"), gin.H{
		"Items": res.Items,
		"Pager": newPager(c.Request.URL.Path, nil, res.Meta),
	})
}

func (s *Site) news(c *gin.Context) {
	res, err := s.api.PublishedNews(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		s.upstream(c, err)
		return
	}
	v := s.view(c)
	s.render(c, http.StatusOK, "news", v.T("nav.news"), gin.H{
		"Items": res.Items,
		"Pager": newPager(c.Request.URL.Path, nil, res.Meta),
	})
}

func (s *Site) article(c *gin.Context) {
	n, err := s.api.Article(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.upstream(c, err)
		return
	}
	if n.Status != model.NewsPublished {
		s.fail(c, http.StatusNotFound, "error.not_found")
		return
	}
	s.render(c, http.StatusOK, "article", n.Title, n)
}

// admin shows totals across every status. The gate only guards the
// preferred locale's dashboard, so the role is checked again here.
func (s *Site) admin(c *gin.Context) {
	sess := gate.SessionFrom(c)
	l := gate.LocaleFrom(c)
	switch {
	case !sess.Authenticated:
		c.Redirect(http.StatusFound, gate.LoginPath(l, c.Request.URL.Path))
		return
	case !sess.Admin:
		c.Redirect(http.StatusFound, "/"+string(l)+"/unauthorized")
		return
	}

	ctx := c.Request.Context()
	one := pagination.PageRequest{Page: 1, PerPage: 1}
	props, err := s.api.Properties(ctx, one)
	if err != nil {
		s.upstream(c, err)
		return
	}
	brokers, err := s.api.Brokers(ctx, one)
	if err != nil {
		s.upstream(c, err)
		return
	}
	news, err := s.api.News(ctx, one)
	if err != nil {
		s.upstream(c, err)
		return
	}
	v := s.view(c)
	s.render(c, http.StatusOK, "admin", v.T("admin.title"), gin.H{
		"Properties": props.Meta.ItemCount,
		"Brokers":    brokers.Meta.ItemCount,
		"News":       news.Meta.ItemCount,
	})
}

type authForm struct {
	Action   string
	Redirect string
}

func (s *Site) login(c *gin.Context) {
	v := s.view(c)
	s.render(c, http.StatusOK, "login", v.T("auth.login.title"), authForm{
		Action:   s.cfg.LoginAction,
		Redirect: sameOriginOrEmpty(c.Query(gate.RedirectParam)),
	})
}

func (s *Site) register(c *gin.Context) {
	v := s.view(c)
	s.render(c, http.StatusOK, "register", v.T("auth.register.title"), authForm{
		Action:   s.cfg.RegisterAction,
		Redirect: sameOriginOrEmpty(c.Query(gate.RedirectParam)),
	})
}

func (s *Site) unauthorized(c *gin.Context) {
	v := s.view(c)
	s.render(c, http.StatusForbidden, "unauthorized", v.T("unauthorized.title"), nil)
}

// switchLanguage stores the target locale and reopens the page given in
// ?next= under it.
func (s *Site) switchLanguage(c *gin.Context) {
	target, ok := locale.Parse(c.Param("target"))
	if !ok {
		s.fail(c, http.StatusNotFound, "error.not_found")
		return
	}
	locale.SetPreferenceCookie(c.Writer, target)

	next := sameOriginOrEmpty(c.Query("next"))
	if next == "" {
		next = "/"
	}
	c.Redirect(http.StatusFound, "/"+string(target)+locale.StripPrefix(next))
}

func (s *Site) view(c *gin.Context) view {
	return newView(gate.LocaleFrom(c), c.Request.URL.Path, c.Request.URL.RawQuery, gate.SessionFrom(c))
}

func (s *Site) render(c *gin.Context, status int, page, title string, data any) {
	t, ok := s.pages[page]
	if !ok {
		s.logger.Error().Str("page", page).Msg("template not registered")
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	v := s.view(c)
	v.Title = title
	v.Data = data
	c.Render(status, render.HTML{Template: t, Name: "layout", Data: v})
}

func (s *Site) fail(c *gin.Context, status int, messageKey string) {
	s.render(c, status, "error", "", gin.H{"Message": messageKey})
}

// upstream maps a client error onto the error page: API 404s stay 404,
// anything else is a bad gateway.
func (s *Site) upstream(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		s.fail(c, http.StatusNotFound, "error.not_found")
		return
	}
	_ = c.Error(err)
	s.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("listing api call failed")
	s.fail(c, http.StatusBadGateway, "error.upstream")
}

// pageFromQuery reads ?page= for site listings; anything unparsable is the
// first page and anything beyond pagination.MaxPage is capped. The page
// size is fixed.
func pageFromQuery(c *gin.Context) pagination.PageRequest {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	page = min(page, pagination.MaxPage)
	return pagination.PageRequest{Page: page, PerPage: pagination.DefaultPerPage}
}

func sameOriginOrEmpty(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return ""
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return ""
	}
	return target
}
