// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net"
	"net/http"
	"strings"
)

// IPv4 and IPv6 address lengths as measured in bits.
const (
	ipv4BitLength = 32
	ipv6BitLength = 128
)

// getClientIP extracts the client's IP address from an HTTP request with proxy awareness.
//
// Proxy headers (X-Real-IP, X-Forwarded-For) are only trusted when the
// connection comes from a private or loopback address, which is where the
// reverse proxy in front of a default backend lives.
func getClientIP(r *http.Request) string {
	remoteIP := r.RemoteAddr
	if ip, _, err := net.SplitHostPort(remoteIP); err == nil {
		remoteIP = ip
	}

	fromTrustedSource := false
	if ip := net.ParseIP(remoteIP); ip != nil {
		fromTrustedSource = ip.IsPrivate() || ip.IsLoopback()
	}

	if fromTrustedSource {
		if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
			return realIP
		}

		// The last X-Forwarded-For entry was added by the proxy we trust.
		if xff := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); xff != "" {
			parts := strings.Split(xff, ",")

			return strings.TrimSpace(parts[len(parts)-1])
		}
	}

	return remoteIP
}

// getNetwork masks rawIP down to the network it is limited as.
func getNetwork(rawIP net.IP, ipv4Prefix, ipv6Prefix int) *net.IPNet {
	var mask net.IPMask
	if rawIP.To4() != nil {
		mask = net.CIDRMask(ipv4Prefix, ipv4BitLength)
	} else {
		mask = net.CIDRMask(ipv6Prefix, ipv6BitLength)
	}

	return &net.IPNet{
		IP:   rawIP.Mask(mask),
		Mask: mask,
	}
}

// networkKey returns the limiter key for a client address, or "" if it is
// not an IP address.
func networkKey(clientIP string) string {
	ip := net.ParseIP(clientIP)
	if ip == nil {
		return ""
	}

	return getNetwork(ip, IPv4Prefix, IPv6Prefix).String()
}
