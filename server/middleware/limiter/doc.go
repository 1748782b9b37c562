// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package limiter is a middleware that rate limits requests per client network.

Clients are grouped into IPv4 /32 and IPv6 /64 networks, each with its own
token bucket. Rejected requests get the error page with status 429.
*/
package limiter
