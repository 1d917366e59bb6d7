package middleware

import (
	"context"
	"net/http"

	"github.com/mssola/useragent"
)

type contextKeyDevice struct{}

// GetDevice retrieves the human-readable device description from the context.
func GetDevice(ctx context.Context) string {
	if d, ok := ctx.Value(contextKeyDevice{}).(string); ok {
		return d
	}
	return ""
}

// Device parses the User-Agent header and injects a display name into the
// context. Login records keep it so users can recognize their own sessions.
func Device(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), contextKeyDevice{}, DescribeUserAgent(r.UserAgent()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// DescribeUserAgent extracts a human-readable device display name from a
// User-Agent string, e.g. "Chrome on Linux" or "Safari on iOS (mobile)".
func DescribeUserAgent(userAgentString string) string {
	if userAgentString == "" {
		return "Unknown Device"
	}

	ua := useragent.New(userAgentString)
	browser, _ := ua.Browser()
	os := ua.OS()

	if browser == "" {
		browser = "Unknown Browser"
	}
	if os == "" {
		os = "Unknown OS"
	}

	name := browser + " on " + os
	if ua.Mobile() {
		name += " (mobile)"
	}
	return name
}
