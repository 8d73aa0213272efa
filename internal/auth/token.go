// Package auth reads the bearer token the credential issuer stores in the
// access_token cookie.
//
// Tokens are decoded WITHOUT signature verification. The resulting Session
// only steers page redirects; every protected API call must be authorized
// again by the service that owns the data.
package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenCookie carries the opaque bearer token.
const AccessTokenCookie = "access_token"

// RoleAdmin is compared case-insensitively against the role claim.
const RoleAdmin = "admin"

var (
	ErrMalformedToken = errors.New("malformed token")
	ErrTokenExpired   = errors.New("token expired")
)

// Claims is the subset of the token payload the site cares about. Fields
// of an unexpected type read as empty; only exp can reject a token.
type Claims struct {
	Subject   string
	Role      string
	Email     string
	FullName  string
	ExpiresAt *time.Time
}

// Session is what the gate and the pages know about the visitor.
type Session struct {
	Authenticated bool
	Admin         bool
	Claims        *Claims
}

// Anonymous is the session of a visitor without a usable token.
func Anonymous() Session { return Session{} }

var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// Decode extracts the claims from the middle segment of token and rejects
// tokens whose exp lies before now. The signature is never checked.
func Decode(token string, now time.Time) (*Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedToken, len(parts))
	}

	payload, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: payload encoding: %v", ErrMalformedToken, err)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(payload), []byte("{")) {
		return nil, fmt.Errorf("%w: payload is not a JSON object", ErrMalformedToken)
	}

	raw := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: payload json: %v", ErrMalformedToken, err)
	}

	exp, err := raw.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("%w: exp: %v", ErrMalformedToken, err)
	}
	claims := &Claims{
		Subject:  stringClaim(raw, "sub"),
		Role:     stringClaim(raw, "role"),
		Email:    stringClaim(raw, "email"),
		FullName: stringClaim(raw, "fullName"),
	}
	if exp != nil {
		t := exp.Time
		claims.ExpiresAt = &t
		if exp.Unix() < now.Unix() {
			return nil, ErrTokenExpired
		}
	}
	return claims, nil
}

// stringClaim reads key as text. Numeric ids are formatted; other types
// count as absent.
func stringClaim(raw jwt.MapClaims, key string) string {
	switch v := raw[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// SessionFromToken never fails: any decode problem yields Anonymous.
func SessionFromToken(token string, now time.Time) Session {
	if token == "" {
		return Anonymous()
	}
	claims, err := Decode(token, now)
	if err != nil {
		return Anonymous()
	}
	return Session{
		Authenticated: true,
		Admin:         strings.EqualFold(claims.Role, RoleAdmin),
		Claims:        claims,
	}
}

// SessionFromRequest reads the access_token cookie of r.
func SessionFromRequest(r *http.Request, now time.Time) Session {
	if r == nil {
		return Anonymous()
	}
	c, err := r.Cookie(AccessTokenCookie)
	if err != nil {
		return Anonymous()
	}
	return SessionFromToken(c.Value, now)
}

// DisplayName picks the friendliest identity hint available.
func (s Session) DisplayName() string {
	if s.Claims == nil {
		return ""
	}
	if s.Claims.FullName != "" {
		return s.Claims.FullName
	}
	if s.Claims.Email != "" {
		return s.Claims.Email
	}
	return s.Claims.Subject
}
