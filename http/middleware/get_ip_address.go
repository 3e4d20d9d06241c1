package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/xy-planning-network/burrow"
)

// UnknownIPAddress stands in for an address that cannot be determined.
const UnknownIPAddress = "0.0.0.0"

// InjectIPAddress grabs the IP address of the client making the request
// and promotes it to *http.Request.Context under burrow.IpAddrKey.
func InjectIPAddress() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := GetIPAddress(r.Header)
			if ip == UnknownIPAddress {
				ip = remoteIP(r.RemoteAddr)
			}

			h.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), burrow.IpAddrKey, ip)))
		})
	}
}

// IPAddress returns the address InjectIPAddress stashed in ctx,
// or UnknownIPAddress.
func IPAddress(ctx context.Context) string {
	if ip, ok := ctx.Value(burrow.IpAddrKey).(string); ok && ip != "" {
		return ip
	}

	return UnknownIPAddress
}

// GetIPAddress parses "X-Forwarded-For" and "X-Real-Ip" headers for the IP address
// of the client making the request.
//
// GetIPAddress skips addresses from non-public ranges.
func GetIPAddress(hm http.Header) string {
	for _, h := range []string{"X-Forwarded-For", "X-Real-Ip"} {
		addresses := strings.Split(hm.Get(h), ",")
		// march from right to left until we get a public address
		// that will be the address right before our proxy.
		for i := len(addresses) - 1; i >= 0; i-- {
			ip := strings.TrimSpace(addresses[i])
			if isPublic(net.ParseIP(ip)) {
				return ip
			}
		}
	}

	return UnknownIPAddress
}

// isPublic checks whether ip is a globally routable unicast address.
// 100.64.0.0/10 (carrier-grade NAT) is treated as private, too.
func isPublic(ip net.IP) bool {
	if ip == nil || !ip.IsGlobalUnicast() || ip.IsPrivate() {
		return false
	}

	return !sharedAddressSpace.Contains(ip)
}

var _, sharedAddressSpace, _ = net.ParseCIDR("100.64.0.0/10")

func remoteIP(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	if net.ParseIP(host) == nil {
		return UnknownIPAddress
	}

	return host
}
