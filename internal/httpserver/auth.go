// apps/go-server/internal/httpserver/auth.go
//
// Table tokens.
// A device that creates a table receives an HS256 JWT whose "tid" claim names
// the table. The token travels as an HttpOnly cookie (browsers) or a Bearer
// header (other clients); the websocket route also accepts ?token=.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/robalobadob/spectrum/apps/go-server/internal/store"
	"github.com/robalobadob/spectrum/apps/go-server/internal/table"
)

var errNoTableClaim = errors.New("token has no table id")

// tableClaims binds a token to one table.
type tableClaims struct {
	TableID string `json:"tid"`
	jwt.RegisteredClaims
}

// signTableToken creates a token for tableID that expires after the configured TTL.
func (s *Server) signTableToken(tableID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.cfg.TokenTTL())
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, tableClaims{
		TableID: tableID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	ss, err := t.SignedString([]byte(s.cfg.JWTSecret))
	return ss, exp, err
}

// parseTableToken validates tok and returns its table id.
func (s *Server) parseTableToken(tok string) (string, error) {
	var claims tableClaims
	_, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (any, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if claims.TableID == "" {
		return "", errNoTableClaim
	}
	return claims.TableID, nil
}

// setTableCookie writes the table token cookie with appropriate security attributes.
func (s *Server) setTableCookie(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, s.cookie(token, exp, 0))
}

// clearTableCookie deletes the table token cookie.
func (s *Server) clearTableCookie(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie("", time.Time{}, -1))
}

func (s *Server) cookie(value string, exp time.Time, maxAge int) *http.Cookie {
	secure := s.cfg.Production()
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode // required for cross-site use when Secure
	}
	return &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
		MaxAge:   maxAge,
	}
}

// tokenExtractor pulls a raw token out of a request.
type tokenExtractor func(r *http.Request, cookieName string) string

// bearerOrCookie extracts a bearer token from the Authorization header or the table cookie.
func bearerOrCookie(r *http.Request, cookieName string) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}

// tokenFromQueryOrCookie also accepts ?token=, since browsers cannot set
// headers on a websocket handshake.
func tokenFromQueryOrCookie(r *http.Request, cookieName string) string {
	if tok := r.URL.Query().Get("token"); tok != "" {
		return tok
	}
	return bearerOrCookie(r, cookieName)
}

// ctxTableKey is the context key type for the resolved *table.Table.
type ctxTableKey struct{}

// requireTable enforces a valid table token and injects the table into the request context.
func (s *Server) requireTable(extract tokenExtractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := extract(r, s.cfg.CookieName)
			if tok == "" {
				writeError(w, http.StatusUnauthorized, "no_table_token")
				return
			}
			id, err := s.parseTableToken(tok)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid_token")
				return
			}
			t, err := s.tables.Get(r.Context(), id)
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, "table_not_found")
				return
			}
			if err != nil {
				writeErr(w, r, err)
				return
			}
			ctx := context.WithValue(r.Context(), ctxTableKey{}, t)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// tableFrom returns the table placed in ctx by requireTable.
func tableFrom(ctx context.Context) *table.Table {
	t, _ := ctx.Value(ctxTableKey{}).(*table.Table)
	return t
}
