package cookie

import (
	"net/http"
	"time"

	"link-hub/internal/domain"

	"github.com/labstack/echo/v4"
)

// Config controls the attributes of the credential cookies.
type Config struct {
	SessionName string
	TokenName   string
	Domain      string
	Secure      bool
	TTL         time.Duration
}

// Store reads and writes the caller's credential fragments as browser
// cookies on one request/response pair. Implements domain.CredentialStore.
// A new Store is bound per request; it is never shared between callers.
type Store struct {
	c   echo.Context
	cfg Config
}

// NewStore binds a credential store to the given request context.
func NewStore(c echo.Context, cfg Config) *Store {
	return &Store{c: c, cfg: cfg}
}

// Get returns both fragments. The boolean is false when either is absent;
// absence is a normal empty result, not a fault.
func (s *Store) Get() (domain.CredentialFragments, bool) {
	session, err := s.c.Cookie(s.cfg.SessionName)
	if err != nil || session.Value == "" {
		return domain.CredentialFragments{}, false
	}
	token, err := s.c.Cookie(s.cfg.TokenName)
	if err != nil || token.Value == "" {
		return domain.CredentialFragments{}, false
	}
	return domain.CredentialFragments{Session: session.Value, Token: token.Value}, true
}

// Set persists both fragments with HttpOnly, SameSite=Lax and a bounded
// lifetime. Secure is controlled by config so local development over plain
// HTTP keeps working.
func (s *Store) Set(fragments domain.CredentialFragments) {
	s.c.SetCookie(s.newCookie(s.cfg.SessionName, fragments.Session, int(s.cfg.TTL.Seconds())))
	s.c.SetCookie(s.newCookie(s.cfg.TokenName, fragments.Token, int(s.cfg.TTL.Seconds())))
}

// Clear expires both fragment cookies.
func (s *Store) Clear() {
	s.c.SetCookie(s.newCookie(s.cfg.SessionName, "", -1))
	s.c.SetCookie(s.newCookie(s.cfg.TokenName, "", -1))
}

func (s *Store) newCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   s.cfg.Domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
