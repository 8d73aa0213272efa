// Package locale knows the display languages the site is published in and
// how a request path and the preference cookie select one of them.
package locale

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Locale is a URL path prefix identifying the display language.
type Locale string

const (
	English    Locale = "en"
	Vietnamese Locale = "vn"
	Lao        Locale = "la"

	// Default is used when no valid preference is stored.
	Default = Lao

	// CookieName stores the visitor's preferred locale.
	CookieName = "locale-preference"
)

var supported = []Locale{English, Vietnamese, Lao}

// Supported returns the locales in display order.
func Supported() []Locale {
	out := make([]Locale, len(supported))
	copy(out, supported)
	return out
}

// Parse reports whether s names a supported locale.
func Parse(s string) (Locale, bool) {
	for _, l := range supported {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// Tag maps the URL locale to a BCP 47 tag for message formatting.
// The URL codes are product codes, not language subtags ("la" is Lao here).
func (l Locale) Tag() language.Tag {
	switch l {
	case English:
		return language.English
	case Vietnamese:
		return language.Vietnamese
	case Lao:
		return language.Lao
	default:
		return language.Lao
	}
}

// FromPath returns the locale prefixing path, matching either the whole
// path ("/en") or its first segment ("/en/...").
func FromPath(path string) (Locale, bool) {
	if !strings.HasPrefix(path, "/") {
		return "", false
	}
	segment := path[1:]
	if i := strings.IndexByte(segment, '/'); i >= 0 {
		segment = segment[:i]
	}
	return Parse(segment)
}

// HasPrefix reports whether path starts with a recognized locale prefix.
func HasPrefix(path string) bool {
	_, ok := FromPath(path)
	return ok
}

// StripPrefix removes the leading locale segment, returning "/" for a
// bare locale root. Paths without a prefix are returned unchanged.
func StripPrefix(path string) string {
	l, ok := FromPath(path)
	if !ok {
		return path
	}
	rest := strings.TrimPrefix(path, "/"+string(l))
	if rest == "" {
		return "/"
	}
	return rest
}

// Preferred reads the preference cookie, falling back to Default when it
// is missing or names an unsupported locale.
func Preferred(r *http.Request) Locale {
	if r == nil {
		return Default
	}
	c, err := r.Cookie(CookieName)
	if err != nil {
		return Default
	}
	return PreferredFromValue(c.Value)
}

// PreferredFromValue applies the cookie fallback rules to a raw value.
func PreferredFromValue(v string) Locale {
	if l, ok := Parse(strings.TrimSpace(v)); ok {
		return l
	}
	return Default
}

// SetPreferenceCookie persists l as the visitor's preferred locale.
func SetPreferenceCookie(w http.ResponseWriter, l Locale) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    string(l),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}
