// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package middleware holds the HTTP middleware wrapped around every route.

Middleware run in the order router.RegisterMiddleware adds them; the first is
outermost. Handlers that can fail are wrapped individually with CatchError,
which swaps failed responses for the configured error page.
*/
package middleware
