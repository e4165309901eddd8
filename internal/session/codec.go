package session

import (
	"net/http"

	"github.com/desertthunder/crossfade/internal/models"
	"github.com/desertthunder/crossfade/internal/shared"
	"github.com/gorilla/securecookie"
)

// CookieName is the fixed name of the session cookie.
const CookieName = "sp_session"

// StateCookieName carries the OAuth state token between /login and /callback.
const StateCookieName = "sp_oauth_state"

// MinSecretLength is the minimum HMAC key size accepted for the codec.
const MinSecretLength = 32

const stateTTLSeconds = 600

// Codec serializes sessions to and from the client-held cookie.
//
// The payload is the JSON-encoded [models.Session], HMAC-signed with the
// configured secret (and AES-encrypted when a block key is provided), so a
// tampered or forged cookie decodes to nothing. The server itself stays
// stateless: the cookie is the only copy of the session.
type Codec struct {
	sc     *securecookie.SecureCookie
	secure bool
}

// NewCodec creates a Codec keyed with secret. blockKey may be nil for a
// sign-only codec; when set it must be a valid AES key length. secure marks
// emitted cookies Secure for production deployments behind TLS.
func NewCodec(secret, blockKey []byte, secure bool) (*Codec, error) {
	if len(secret) < MinSecretLength {
		return nil, shared.ErrWeakSessionSecret
	}

	sc := securecookie.New(secret, blockKey)
	sc.SetSerializer(securecookie.JSONEncoder{})
	sc.MaxAge(int(models.SessionTTL.Seconds()))

	return &Codec{sc: sc, secure: secure}, nil
}

// attributes returns a cookie skeleton with the fixed attribute set. Encode
// and Clear must agree on these so browsers reliably overwrite the cookie.
func (c *Codec) attributes(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Encode wraps the session in a signed cookie good for [models.SessionTTL].
func (c *Codec) Encode(session models.Session) (*http.Cookie, error) {
	value, err := c.sc.Encode(CookieName, session)
	if err != nil {
		return nil, err
	}

	cookie := c.attributes(CookieName)
	cookie.Value = value
	cookie.MaxAge = int(models.SessionTTL.Seconds())
	return cookie, nil
}

// Decode extracts the session from the request cookie header. Returns nil
// on absence, tampering, or any parse failure; it never fails loudly.
func (c *Codec) Decode(r *http.Request) *models.Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}

	var session models.Session
	if err := c.sc.Decode(CookieName, cookie.Value, &session); err != nil {
		return nil
	}
	if session.AccessToken == "" {
		return nil
	}

	return &session
}

// Clear emits the session cookie with an empty value and zero lifetime,
// overwriting any stored session on the client.
func (c *Codec) Clear() *http.Cookie {
	cookie := c.attributes(CookieName)
	cookie.Value = ""
	cookie.MaxAge = -1
	return cookie
}

// EncodeState wraps an OAuth state token in a short-lived cookie so the
// callback can verify the redirect it receives is the one it started.
func (c *Codec) EncodeState(state string) *http.Cookie {
	cookie := c.attributes(StateCookieName)
	cookie.Value = state
	cookie.MaxAge = stateTTLSeconds
	return cookie
}

// DecodeState returns the pending state token, or "" when none is present.
func (c *Codec) DecodeState(r *http.Request) string {
	cookie, err := r.Cookie(StateCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// ClearState discards the state cookie after a callback attempt.
func (c *Codec) ClearState() *http.Cookie {
	cookie := c.attributes(StateCookieName)
	cookie.Value = ""
	cookie.MaxAge = -1
	return cookie
}
