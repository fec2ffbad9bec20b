package clientip

import (
	"net"
	"net/http"
	"strings"
)

// GetIP resolves the client's IP address from the request. Proxy headers
// are consulted first, in this order:
//  1. X-Forwarded-For (first valid IP in the chain)
//  2. X-Real-IP
//  3. RemoteAddr
//
// Every candidate is validated with net.ParseIP; spoofable garbage in a
// header falls through to the next source instead of being stored.
func GetIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		for _, ip := range strings.Split(forwarded, ",") {
			if parsed := parseIP(ip); parsed != "" {
				return parsed
			}
		}
	}

	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		if parsed := parseIP(ip); parsed != "" {
			return parsed
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr without a port, assume it's a bare IP.
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// parseIP validates and normalizes a candidate address. Returns "" for
// anything net.ParseIP rejects.
func parseIP(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	ip := net.ParseIP(raw)
	if ip == nil {
		return ""
	}
	return ip.String()
}
