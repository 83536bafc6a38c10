package middleware

import (
	"crypto/subtle"
	"net/http"

	perr "fixqueue/internal/platform/errors"
	pnet "fixqueue/internal/platform/net"
)

// KeyPort is a tiny seam for shared-secret checks
type KeyPort interface {
	// Check returns an error when the request does not carry a valid key
	Check(r *http.Request) error
}

// APIKey guards a route group with a shared secret header.
// A nil port disables the check entirely (open endpoint)
func APIKey(p KeyPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			if err := p.Check(r); err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// HeaderKey implements KeyPort against a fixed header and secret.
// An empty secret means the endpoint is open (matches env-unset behavior)
type HeaderKey struct {
	Header string
	Secret string
}

// Check compares the header value against the secret in constant time
func (h HeaderKey) Check(r *http.Request) error {
	if h.Secret == "" {
		return nil
	}
	name := h.Header
	if name == "" {
		name = "X-Api-Key"
	}
	got := r.Header.Get(name)
	if got == "" {
		return perr.Unauthorizedf("missing api key")
	}
	if subtle.ConstantTimeCompare([]byte(got), []byte(h.Secret)) != 1 {
		return perr.Unauthorizedf("invalid api key")
	}
	return nil
}
