package gate

import (
	"strings"

	"github.com/maxviazov/realty-marketplace/internal/locale"
)

// LocaleRouter is the internationalization stage for locale-prefixed
// paths. Its redirect is the default outcome; the auth checks in
// Localized may still override it.
type LocaleRouter interface {
	Route(req Request, l locale.Locale) Decision
}

// LocaleRouterFunc adapts a function to LocaleRouter.
type LocaleRouterFunc func(req Request, l locale.Locale) Decision

func (f LocaleRouterFunc) Route(req Request, l locale.Locale) Decision { return f(req, l) }

// PassThroughRouter accepts every locale-prefixed path as is.
var PassThroughRouter = LocaleRouterFunc(func(Request, locale.Locale) Decision { return pass() })

// TrailingSlashRouter canonicalizes "/la/news/" to "/la/news", keeping the
// query. Locale roots ("/la/") are left untouched.
var TrailingSlashRouter = LocaleRouterFunc(func(req Request, l locale.Locale) Decision {
	root := "/" + string(l) + "/"
	if req.Path == root || !strings.HasSuffix(req.Path, "/") {
		return pass()
	}
	canonical := strings.TrimRight(req.Path, "/")
	if canonical == "" || canonical == "/"+string(l) {
		return pass()
	}
	return redirectTo(withQuery(canonical, req.RawQuery))
})
