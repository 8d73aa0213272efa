package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strconv"

	"golang.org/x/text/message"

	"github.com/maxviazov/realty-marketplace/internal/auth"
	"github.com/maxviazov/realty-marketplace/internal/locale"
	"github.com/maxviazov/realty-marketplace/internal/model"
	"github.com/maxviazov/realty-marketplace/internal/pagination"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageNames = []string{
	"home", "properties", "property", "brokers", "news", "article",
	"admin", "login", "register", "unauthorized", "error",
}

// parseTemplates builds one template set per page, each sharing the layout
// and partials.
func parseTemplates() (map[string]*template.Template, error) {
	set := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		set[name] = t
	}
	return set, nil
}

// view is what every template receives. Page specific values live in Data.
type view struct {
	Locale  locale.Locale
	Locales []locale.Locale
	Path    string // current path without the locale prefix
	Query   string
	Session auth.Session
	Title   string
	Data    any

	printer *message.Printer
}

func newView(l locale.Locale, path, rawQuery string, s auth.Session) view {
	return view{
		Locale:  l,
		Locales: locale.Supported(),
		Path:    locale.StripPrefix(path),
		Query:   rawQuery,
		Session: s,
		printer: locale.Printer(l),
	}
}

// T looks key up in the site catalog for the page locale.
func (v view) T(key string, args ...any) string {
	return v.printer.Sprintf(key, args...)
}

// Href qualifies a site path with the page locale.
func (v view) Href(path string) string {
	return "/" + string(v.Locale) + path
}

// SwitchHref points at the language switch for l, returning to this page.
func (v view) SwitchHref(l locale.Locale) string {
	next := v.Path
	if v.Query != "" {
		next += "?" + v.Query
	}
	return "/" + string(v.Locale) + "/language/" + string(l) + "?next=" + url.QueryEscape(next)
}

func (v view) Number(n int) string {
	return v.printer.Sprintf("%d", n)
}

// Price renders minor units with locale digit grouping.
func (v view) Price(p model.Property) string {
	return v.printer.Sprintf("%.2f", float64(p.Price)/100) + " " + p.Currency
}

// pager carries the page links for a listing.
type pager struct {
	Meta     pagination.PageMeta
	PrevHref string
	NextHref string
}

// newPager derives prev/next links from meta, keeping the other query
// parameters of the listing.
func newPager(basePath string, q url.Values, meta pagination.PageMeta) pager {
	link := func(page int) string {
		out := url.Values{}
		for k, vs := range q {
			out[k] = append([]string(nil), vs...)
		}
		out.Set("page", strconv.Itoa(page))
		return basePath + "?" + out.Encode()
	}
	p := pager{Meta: meta}
	if meta.HasPreviousPage {
		p.PrevHref = link(meta.Page - 1)
	}
	if meta.HasNextPage {
		p.NextHref = link(meta.Page + 1)
	}
	return p
}

type pagerView struct {
	V view
	P pager
}

// Pager pairs p with v so the partial can translate its labels.
func (v view) Pager(p pager) pagerView { return pagerView{V: v, P: p} }

type cardView struct {
	V view
	P model.Property
}

// Card pairs a property with v for the card partial.
func (v view) Card(p model.Property) cardView { return cardView{V: v, P: p} }
