package gate

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/realty-marketplace/internal/auth"
	"github.com/maxviazov/realty-marketplace/internal/locale"
)

const (
	sessionKey = "gate.session"
	localeKey  = "gate.locale"
)

type options struct {
	now  func() time.Time
	skip []string
	log  zerolog.Logger
}

// Option configures Middleware.
type Option func(*options)

// WithClock replaces time.Now for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithSkipPrefixes exempts paths (API, probes, assets) from the gate.
func WithSkipPrefixes(prefixes ...string) Option {
	return func(o *options) { o.skip = append(o.skip, prefixes...) }
}

// WithLogger logs issued redirects at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l.With().Str("module", "gate").Logger() }
}

// Middleware runs d for every request not matching a skip prefix. Redirects
// are written as 302 and abort the chain; otherwise the session and the
// resolved locale are stored on the gin context.
func Middleware(d *Dispatcher, opts ...Option) gin.HandlerFunc {
	o := options{now: time.Now, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, p := range o.skip {
			if strings.HasPrefix(path, p) {
				c.Next()
				return
			}
		}

		ctx := Context{
			Session:   auth.SessionFromRequest(c.Request, o.now()),
			Preferred: locale.Preferred(c.Request),
		}
		dec := d.Decide(Request{Path: path, RawQuery: c.Request.URL.RawQuery}, ctx)

		if dec.Kind == Redirect {
			o.log.Debug().
				Str("path", path).
				Str("location", dec.Location).
				Bool("authenticated", ctx.Session.Authenticated).
				Msg("gate redirect")
			c.Redirect(http.StatusFound, dec.Location)
			c.Abort()
			return
		}

		resolved := dec.Locale
		if resolved == "" {
			resolved = ctx.Preferred
		}
		c.Set(sessionKey, ctx.Session)
		c.Set(localeKey, resolved)
		c.Next()
	}
}

// SessionFrom returns the session stored by Middleware.
func SessionFrom(c *gin.Context) auth.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(auth.Session); ok {
			return s
		}
	}
	return auth.Anonymous()
}

// LocaleFrom returns the locale resolved by Middleware, or the preference
// cookie when the gate did not run.
func LocaleFrom(c *gin.Context) locale.Locale {
	if v, ok := c.Get(localeKey); ok {
		if l, ok := v.(locale.Locale); ok {
			return l
		}
	}
	return locale.Preferred(c.Request)
}
