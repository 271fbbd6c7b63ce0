package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// RealIP rewrites RemoteAddr to the client address reported by a trusted
// reverse proxy. Forwarding headers are ignored unless the TCP peer falls in
// trusted; with no trusted prefixes RemoteAddr is never touched.
//
// X-Forwarded-For is read right to left and the first address outside the
// trusted prefixes wins, so entries a client prepends are never used.
// X-Real-IP is consulted only when X-Forwarded-For is absent.
func RealIP(trusted []netip.Prefix) Middleware {
	isTrusted := func(a netip.Addr) bool {
		a = a.Unmap()
		for _, p := range trusted {
			if p.Contains(a) {
				return true
			}
		}
		return false
	}

	return func(next http.Handler) http.Handler {
		if len(trusted) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			peer, port := splitAddr(r.RemoteAddr)
			if peer.IsValid() && isTrusted(peer) {
				if client, ok := forwardedClient(r.Header, isTrusted); ok {
					r.RemoteAddr = net.JoinHostPort(client.String(), port)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func forwardedClient(h http.Header, isTrusted func(netip.Addr) bool) (netip.Addr, bool) {
	var hops []string
	for _, v := range h.Values("X-Forwarded-For") {
		hops = append(hops, strings.Split(v, ",")...)
	}
	if len(hops) == 0 {
		a, err := netip.ParseAddr(strings.TrimSpace(h.Get("X-Real-IP")))
		if err != nil {
			return netip.Addr{}, false
		}
		return a.Unmap(), true
	}

	for i := len(hops) - 1; i >= 0; i-- {
		a, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
		if err != nil {
			// A garbled hop was written by someone we do not trust.
			return netip.Addr{}, false
		}
		if !isTrusted(a) {
			return a.Unmap(), true
		}
	}
	return netip.Addr{}, false
}

func splitAddr(remote string) (netip.Addr, string) {
	host, port, err := net.SplitHostPort(remote)
	if err != nil {
		host, port = remote, "0"
	}
	a, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}, port
	}
	return a.Unmap(), port
}
