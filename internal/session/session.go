// Package session keeps per-client storefront state (cart, admin flag, notices)
// in a signed cookie.
package session

import (
	"encoding/gob"
	"net/http"

	"go-storefront/internal/models"

	"github.com/gorilla/sessions"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

const (
	cookieName = "storefront"
	cartKey    = "cart"
	adminKey   = "is_admin"
	maxAge     = 86400 * 30
)

func init() {
	gob.Register(map[string]int{})
	gob.Register([]interface{}{})
}

type Store struct {
	store *sessions.CookieStore
	log   *zap.Logger
}

// NewStore signs cookies with secret. secure marks them HTTPS-only.
func NewStore(secret string, secure bool, log *zap.Logger) *Store {
	cs := sessions.NewCookieStore([]byte(secret))
	cs.MaxAge(maxAge)
	cs.Options.Path = "/"
	cs.Options.HttpOnly = true
	cs.Options.Secure = secure
	cs.Options.SameSite = http.SameSiteLaxMode
	return &Store{store: cs, log: log}
}

// Load returns the request's session. A cookie that fails to decode is
// replaced by a fresh session rather than failing the request.
func (s *Store) Load(r *http.Request) *Session {
	raw, err := s.store.Get(r, cookieName)
	if err != nil {
		s.log.Debug("discarding undecodable session", zap.Error(err))
		raw = sessions.NewSession(s.store, cookieName)
		opts := *s.store.Options
		raw.Options = &opts
		raw.IsNew = true
	}
	return &Session{raw: raw}
}

// Session is the per-request view of one client's state.
type Session struct {
	raw *sessions.Session
}

// Cart returns the stored cart, or an empty one.
func (s *Session) Cart() models.Cart {
	stored, err := cast.ToStringMapIntE(s.raw.Values[cartKey])
	if err != nil || stored == nil {
		return models.Cart{}
	}
	cart := make(models.Cart, len(stored))
	for k, qty := range stored {
		if qty >= 1 {
			cart[k] = qty
		}
	}
	return cart
}

func (s *Session) SetCart(cart models.Cart) {
	s.raw.Values[cartKey] = map[string]int(cart)
}

// Authorized reports the admin flag.
func (s *Session) Authorized() bool {
	return cast.ToBool(s.raw.Values[adminKey])
}

// Grant sets the admin flag for the rest of the session.
func (s *Session) Grant() {
	s.raw.Values[adminKey] = true
}

// AddNotice queues a one-shot message for the next rendered page.
func (s *Session) AddNotice(msg string) {
	s.raw.AddFlash(msg)
}

// Notices drains the queued messages.
func (s *Session) Notices() []string {
	flashes := s.raw.Flashes()
	out := make([]string, 0, len(flashes))
	for _, f := range flashes {
		out = append(out, cast.ToString(f))
	}
	return out
}

func (s *Session) Save(r *http.Request, w http.ResponseWriter) error {
	return s.raw.Save(r, w)
}
