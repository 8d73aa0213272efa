// Package gate decides, before any page renders, whether a request must be
// redirected to its locale-qualified URL, to the login page, or away from
// the auth pages.
//
// The gate is a UX layer only. It trusts unverified token claims (see
// package auth), so its decisions never replace authorization on the API.
package gate

import (
	"net/url"
	"strings"

	"github.com/maxviazov/realty-marketplace/internal/auth"
	"github.com/maxviazov/realty-marketplace/internal/locale"
)

// AdminPrefix is the protected area of the site.
const AdminPrefix = "/admin"

// RedirectParam carries the continuation URL through the login page.
const RedirectParam = "redirect"

// Request is the part of an HTTP request the guards look at.
type Request struct {
	Path     string
	RawQuery string
}

// Query parses RawQuery, ignoring malformed pairs.
func (r Request) Query() url.Values {
	q, _ := url.ParseQuery(r.RawQuery)
	return q
}

// Context is the per-request state the guards decide on.
type Context struct {
	Session   auth.Session
	Preferred locale.Locale
}

// Kind is the outcome category of a guard.
type Kind int

const (
	// Next defers to the following guard.
	Next Kind = iota
	// PassThrough lets the request reach rendering.
	PassThrough
	// Redirect sends the browser to Location.
	Redirect
)

func (k Kind) String() string {
	switch k {
	case Next:
		return "next"
	case PassThrough:
		return "pass"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the routing outcome for one request. Locale is set when the
// path carried a locale prefix.
type Decision struct {
	Kind     Kind
	Location string
	Locale   locale.Locale
}

func next() Decision { return Decision{Kind: Next} }

func pass() Decision { return Decision{Kind: PassThrough} }

func redirectTo(loc string) Decision { return Decision{Kind: Redirect, Location: loc} }

// Guard inspects a request and either decides or defers with Next.
type Guard func(req Request, ctx Context) Decision

// Dispatcher evaluates guards in order; the first decision that is not
// Next wins. A request no guard decides on passes through.
type Dispatcher struct {
	guards []Guard
}

// New composes guards in the given order.
func New(guards ...Guard) *Dispatcher {
	return &Dispatcher{guards: append([]Guard(nil), guards...)}
}

// Default is the site's guard chain with the given locale router.
func Default(router LocaleRouter) *Dispatcher {
	return New(
		CanonicalizeLocale,
		Localized(router),
		BareAuthFallback,
		CatchAll,
	)
}

// Decide runs the guard chain for req.
func (d *Dispatcher) Decide(req Request, ctx Context) Decision {
	if ctx.Preferred == "" {
		ctx.Preferred = locale.Default
	}
	for _, g := range d.guards {
		if dec := g(req, ctx); dec.Kind != Next {
			return dec
		}
	}
	return pass()
}

// CanonicalizeLocale redirects paths without a locale prefix into the
// preferred locale. The site root and /api paths are left alone.
func CanonicalizeLocale(req Request, ctx Context) Decision {
	if locale.HasPrefix(req.Path) || req.Path == "/" || strings.HasPrefix(req.Path, "/api") {
		return next()
	}
	return redirectTo("/" + string(ctx.Preferred) + req.Path)
}

// Localized hands locale-prefixed paths to router and then applies the
// admin and auth-page checks on top of its result.
func Localized(router LocaleRouter) Guard {
	if router == nil {
		router = PassThroughRouter
	}
	return func(req Request, ctx Context) Decision {
		l, ok := locale.FromPath(req.Path)
		if !ok {
			return next()
		}

		base := router.Route(req, l)
		if base.Kind == Next {
			base = pass()
		}
		base.Locale = l

		pref := "/" + string(ctx.Preferred)
		if strings.Contains(req.Path, pref+AdminPrefix) {
			if dec := guardAdmin(ctx, req.Path); dec.Kind != Next {
				dec.Locale = l
				return dec
			}
		}
		if isAuthPage(req.Path) {
			if dec := bounceAuthenticated(req, ctx); dec.Kind != Next {
				dec.Locale = l
				return dec
			}
		}
		return base
	}
}

// BareAuthFallback mirrors the Localized checks for paths that carry no
// locale segment, inserting the preferred locale into the targets.
func BareAuthFallback(req Request, ctx Context) Decision {
	if locale.HasPrefix(req.Path) {
		return next()
	}
	if strings.Contains(req.Path, AdminPrefix) {
		if dec := guardAdmin(ctx, "/"+string(ctx.Preferred)+req.Path); dec.Kind != Next {
			return dec
		}
	}
	if isAuthPage(req.Path) {
		return bounceAuthenticated(req, ctx)
	}
	return next()
}

// CatchAll sends any remaining non-root path without a locale prefix into
// the preferred locale. /api stays exempt as in CanonicalizeLocale.
func CatchAll(req Request, ctx Context) Decision {
	if req.Path == "/" || locale.HasPrefix(req.Path) || strings.HasPrefix(req.Path, "/api") {
		return next()
	}
	return redirectTo("/" + string(ctx.Preferred) + req.Path)
}

// guardAdmin decides for an admin path; continuation is the locale
// qualified path the login page sends the visitor back to.
func guardAdmin(ctx Context, continuation string) Decision {
	pref := "/" + string(ctx.Preferred)
	switch {
	case !ctx.Session.Authenticated:
		return redirectTo(LoginPath(ctx.Preferred, continuation))
	case !ctx.Session.Admin:
		return redirectTo(pref + "/unauthorized")
	default:
		return next()
	}
}

func bounceAuthenticated(req Request, ctx Context) Decision {
	if !ctx.Session.Authenticated {
		return next()
	}
	// An auth page as continuation would bounce forever.
	if target := req.Query().Get(RedirectParam); isSameOriginPath(target) && !isAuthPage(target) {
		return redirectTo(target)
	}
	pref := "/" + string(ctx.Preferred)
	if ctx.Session.Admin {
		return redirectTo(pref + AdminPrefix)
	}
	return redirectTo(pref + "/")
}

func isAuthPage(path string) bool {
	return strings.Contains(path, "/login") || strings.Contains(path, "/register")
}

// isSameOriginPath accepts absolute paths only; scheme-relative and
// backslash forms would leave the site.
func isSameOriginPath(target string) bool {
	if !strings.HasPrefix(target, "/") {
		return false
	}
	if strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return false
	}
	u, err := url.Parse(target)
	return err == nil && u.Scheme == "" && u.Host == ""
}

// LoginPath is the login page of l that sends the visitor back to
// continuation afterwards.
func LoginPath(l locale.Locale, continuation string) string {
	return "/" + string(l) + "/login?" + RedirectParam + "=" + escapeContinuation(continuation)
}

// escapeContinuation query-escapes a path but keeps its slashes readable.
func escapeContinuation(path string) string {
	return strings.ReplaceAll(url.QueryEscape(path), "%2F", "/")
}

func withQuery(path, rawQuery string) string {
	if rawQuery == "" {
		return path
	}
	return path + "?" + rawQuery
}
