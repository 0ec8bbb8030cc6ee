package middleware

import (
	"net"
	"strings"
)

const HeaderForwardedFor = "X-Forwarded-For"

// clientIP адрес клиента; первый адрес из X-Forwarded-For берется только при trustProxy
func clientIP(remoteAddr, forwardedFor string, trustProxy bool) string {
	if trustProxy && forwardedFor != "" {
		first := strings.TrimSpace(strings.Split(forwardedFor, ",")[0])
		if first != "" {
			return first
		}
	}

	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}
