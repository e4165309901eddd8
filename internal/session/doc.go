// Package session implements the stateless session lifecycle.
//
// A [models.Session] lives exclusively in a signed client cookie; the
// server reconstructs it on every request and never stores it. [Codec]
// handles the cookie wire format and attributes, [Codec.Guard] turns a raw
// request into one of four typed outcomes (valid, missing, malformed,
// expired) before any upstream call is attempted.
//
// The cookie payload is HMAC-signed via gorilla/securecookie rather than
// stored as raw JSON, so possession of the cookie format is not enough to
// forge a session. This is a deliberate hardening over a plain JSON value;
// the stateless design is unchanged.
package session
