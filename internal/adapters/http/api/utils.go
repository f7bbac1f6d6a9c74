package api

import (
	"net"
	"net/http"
	"strings"
)

// clientKey identifies the caller for rate limiting: the remote host, or the
// first X-Forwarded-For hop when the proxy in front is trusted to set it.
func clientKey(r *http.Request, trustForwarded bool) string {
	if fwd := r.Header.Get("X-Forwarded-For"); trustForwarded && fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// normalizeNOC trims and upper-cases a country code from a request.
func normalizeNOC(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func requireMethod(w http.ResponseWriter, r *http.Request, op, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	fail(w, NewKind(op, ErrMethodNotAllowed))
	return false
}
