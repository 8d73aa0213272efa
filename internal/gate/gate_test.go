package gate_test

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/realty-marketplace/internal/auth"
	"github.com/maxviazov/realty-marketplace/internal/gate"
	"github.com/maxviazov/realty-marketplace/internal/locale"
)

var now = time.Unix(1_700_000_000, 0)

func token(payload string) string {
	h := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256"}`))
	p := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return h + "." + p + ".sig"
}

var (
	anonymous = auth.Anonymous()
	member    = auth.SessionFromToken(token(`{"role":"user","exp":1800000000}`), now)
	admin     = auth.SessionFromToken(token(`{"role":"admin","exp":1800000000}`), now)
)

func decide(path, rawQuery string, s auth.Session, pref locale.Locale) gate.Decision {
	d := gate.Default(gate.TrailingSlashRouter)
	return d.Decide(gate.Request{Path: path, RawQuery: rawQuery}, gate.Context{Session: s, Preferred: pref})
}

func TestDispatcher_Decide(t *testing.T) {
	cases := []struct {
		name     string
		path     string
		query    string
		session  auth.Session
		pref     locale.Locale
		wantKind gate.Kind
		wantLoc  string
	}{
		{"bare path into default locale", "/foo", "", anonymous, "", gate.Redirect, "/la/foo"},
		{"bare path into preferred locale", "/news/x", "", anonymous, locale.English, gate.Redirect, "/en/news/x"},
		{"bare path drops query", "/properties", "page=2", anonymous, locale.Lao, gate.Redirect, "/la/properties"},
		{"root passes", "/", "", anonymous, locale.Lao, gate.PassThrough, ""},
		{"api exempt from canonicalization", "/api/v1/properties", "", anonymous, locale.Lao, gate.PassThrough, ""},
		{"locale root passes", "/vn", "", anonymous, locale.Lao, gate.PassThrough, ""},
		{"public page passes", "/la/properties", "", anonymous, locale.Lao, gate.PassThrough, ""},

		{"admin anonymous", "/la/admin", "", anonymous, locale.Lao, gate.Redirect, "/la/login?redirect=/la/admin"},
		{"admin subpage anonymous", "/la/admin/news", "", anonymous, locale.Lao, gate.Redirect, "/la/login?redirect=/la/admin/news"},
		{"admin member", "/la/admin", "", member, locale.Lao, gate.Redirect, "/la/unauthorized"},
		{"admin admin", "/la/admin", "", admin, locale.Lao, gate.PassThrough, ""},
		{"admin other locale is not matched", "/en/admin", "", anonymous, locale.Lao, gate.PassThrough, ""},
		{"admin preferred english", "/en/admin", "", anonymous, locale.English, gate.Redirect, "/en/login?redirect=/en/admin"},

		{"login anonymous", "/la/login", "", anonymous, locale.Lao, gate.PassThrough, ""},
		{"login admin no redirect", "/la/login", "", admin, locale.Lao, gate.Redirect, "/la/admin"},
		{"login member no redirect", "/la/login", "", member, locale.Lao, gate.Redirect, "/la/"},
		{"register member", "/vn/register", "", member, locale.Vietnamese, gate.Redirect, "/vn/"},
		{"login honors redirect", "/la/login", "redirect=/la/admin/news", admin, locale.Lao, gate.Redirect, "/la/admin/news"},
		{"login ignores off-site redirect", "/la/login", "redirect=https://evil.example", member, locale.Lao, gate.Redirect, "/la/"},
		{"login ignores scheme-relative redirect", "/la/login", "redirect=//evil.example", admin, locale.Lao, gate.Redirect, "/la/admin"},
		{"login ignores looping redirect", "/la/login", "redirect=/la/login", member, locale.Lao, gate.Redirect, "/la/"},

		{"trailing slash canonicalized", "/la/news/", "page=2", anonymous, locale.Lao, gate.Redirect, "/la/news?page=2"},
		{"locale root slash kept", "/la/", "", anonymous, locale.Lao, gate.PassThrough, ""},
		{"auth check overrides i18n redirect", "/la/admin/", "", anonymous, locale.Lao, gate.Redirect, "/la/login?redirect=/la/admin/"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := decide(tc.path, tc.query, tc.session, tc.pref)
			assert.Equal(t, tc.wantKind, got.Kind, "kind (got %s)", got.Kind)
			assert.Equal(t, tc.wantLoc, got.Location)
		})
	}
}

func TestDispatcher_ExpiredTokenIsAnonymous(t *testing.T) {
	expired := auth.SessionFromToken(token(`{"role":"admin","exp":1600000000}`), now)
	got := decide("/la/admin", "", expired, "")
	assert.Equal(t, gate.Redirect, got.Kind)
	assert.Equal(t, "/la/login?redirect=/la/admin", got.Location)
}

func TestDispatcher_ResolvedLocale(t *testing.T) {
	got := decide("/en/news", "", anonymous, locale.Lao)
	assert.Equal(t, gate.PassThrough, got.Kind)
	assert.Equal(t, locale.English, got.Locale, "rendering follows the path locale")
}

func TestBareAuthFallback(t *testing.T) {
	ctx := func(s auth.Session) gate.Context { return gate.Context{Session: s, Preferred: locale.Vietnamese} }

	d := gate.BareAuthFallback(gate.Request{Path: "/admin/users"}, ctx(anonymous))
	assert.Equal(t, gate.Redirect, d.Kind)
	assert.Equal(t, "/vn/login?redirect=/vn/admin/users", d.Location)

	d = gate.BareAuthFallback(gate.Request{Path: "/admin"}, ctx(member))
	assert.Equal(t, "/vn/unauthorized", d.Location)

	d = gate.BareAuthFallback(gate.Request{Path: "/admin"}, ctx(admin))
	assert.Equal(t, gate.Next, d.Kind, "admins fall through to the catch-all")

	d = gate.BareAuthFallback(gate.Request{Path: "/login"}, ctx(admin))
	assert.Equal(t, "/vn/admin", d.Location)

	d = gate.BareAuthFallback(gate.Request{Path: "/login"}, ctx(anonymous))
	assert.Equal(t, gate.Next, d.Kind)

	d = gate.BareAuthFallback(gate.Request{Path: "/vn/admin"}, ctx(anonymous))
	assert.Equal(t, gate.Next, d.Kind, "locale-qualified paths belong to Localized")
}

func TestCatchAll(t *testing.T) {
	c := gate.Context{Preferred: locale.English}
	assert.Equal(t, gate.Next, gate.CatchAll(gate.Request{Path: "/"}, c).Kind)
	assert.Equal(t, gate.Next, gate.CatchAll(gate.Request{Path: "/en/x"}, c).Kind)
	assert.Equal(t, gate.Next, gate.CatchAll(gate.Request{Path: "/api/x"}, c).Kind)
	d := gate.CatchAll(gate.Request{Path: "/x"}, c)
	assert.Equal(t, "/en/x", d.Location)
}

func TestDispatcher_GuardOrder(t *testing.T) {
	var calls []string
	record := func(name string, out gate.Kind) gate.Guard {
		return func(gate.Request, gate.Context) gate.Decision {
			calls = append(calls, name)
			return gate.Decision{Kind: out, Location: "/" + name}
		}
	}
	d := gate.New(record("a", gate.Next), record("b", gate.Redirect), record("c", gate.Redirect))
	got := d.Decide(gate.Request{Path: "/x"}, gate.Context{})
	assert.Equal(t, "/b", got.Location)
	assert.Equal(t, []string{"a", "b"}, calls, "guards after a decision never run")

	empty := gate.New()
	assert.Equal(t, gate.PassThrough, empty.Decide(gate.Request{Path: "/x"}, gate.Context{}).Kind)
}

func newEngine(opts ...gate.Option) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	opts = append([]gate.Option{gate.WithClock(func() time.Time { return now }), gate.WithSkipPrefixes("/live")}, opts...)
	r.Use(gate.Middleware(gate.Default(gate.TrailingSlashRouter), opts...))
	r.GET("/live", func(c *gin.Context) { c.String(http.StatusOK, "alive") })
	r.NoRoute(func(c *gin.Context) {
		s := gate.SessionFrom(c)
		c.String(http.StatusOK, "%s|%t|%t", gate.LocaleFrom(c), s.Authenticated, s.Admin)
	})
	return r
}

func TestMiddleware_RedirectsBarePath(t *testing.T) {
	r := newEngine()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/foo", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/la/foo", w.Header().Get("Location"))
}

func TestMiddleware_UsesPreferenceCookie(t *testing.T) {
	r := newEngine()
	req := httptest.NewRequest(http.MethodGet, "/brokers", nil)
	req.AddCookie(&http.Cookie{Name: locale.CookieName, Value: "en"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/en/brokers", w.Header().Get("Location"))
}

func TestMiddleware_ExpiredCookieToken(t *testing.T) {
	r := newEngine()
	req := httptest.NewRequest(http.MethodGet, "/la/admin", nil)
	req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: token(`{"role":"admin","exp":1}`)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/la/login?redirect=/la/admin", w.Header().Get("Location"))
}

func TestMiddleware_MalformedCookieNeverFails(t *testing.T) {
	r := newEngine()
	req := httptest.NewRequest(http.MethodGet, "/la/news", nil)
	req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: "not-a-token"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "la|false|false", w.Body.String())
}

func TestMiddleware_PassThroughStoresSession(t *testing.T) {
	r := newEngine()
	req := httptest.NewRequest(http.MethodGet, "/vn/admin", nil)
	req.AddCookie(&http.Cookie{Name: locale.CookieName, Value: "vn"})
	req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: token(`{"role":"Admin"}`)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "vn|true|true", w.Body.String())
}

func TestMiddleware_SkipPrefixes(t *testing.T) {
	r := newEngine()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginPath(t *testing.T) {
	assert.Equal(t, "/en/login?redirect=/en/admin", gate.LoginPath(locale.English, "/en/admin"))
	assert.Equal(t, "/la/login?redirect=/la/admin%3Ftab%3D2", gate.LoginPath(locale.Lao, "/la/admin?tab=2"))
}

func TestMiddleware_AdminWithNumericSubject(t *testing.T) {
	r := newEngine()
	req := httptest.NewRequest(http.MethodGet, "/la/admin", nil)
	req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: token(`{"sub":123,"role":"admin","iat":"x","exp":1800000000}`)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "la|true|true", w.Body.String())
}
