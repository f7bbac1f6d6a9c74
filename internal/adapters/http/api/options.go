package api

import "time"

const defaultSessionTTL = 24 * time.Hour

// Option configures a Server.
type Option func(*Server)

// WithRateLimiter enables per-client limiting on the /api routes.
func WithRateLimiter(l RateLimiter) Option {
	return func(s *Server) {
		s.limiter = l
	}
}

// WithTrustForwardedFor keys rate limiting by the first X-Forwarded-For hop.
// Only enable it behind a proxy that overwrites the header.
func WithTrustForwardedFor(on bool) Option {
	return func(s *Server) {
		s.trustForwarded = on
	}
}

// WithSessionTTL sets the lifetime of the session cookie.
func WithSessionTTL(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.sessionTTL = d
		}
	}
}

// WithSecureCookies marks the session cookie Secure.
func WithSecureCookies(on bool) Option {
	return func(s *Server) {
		s.secure = on
	}
}
