// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package idgen makes short request IDs for logs.
package idgen

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// entropyBytes of randomness follow the timestamp; 3 bytes encode to 4 characters.
const entropyBytes = 3

// Make returns an ID made of the wall-clock time (HHMMSS) and a random suffix.
func Make() string {
	return MakeAt(time.Now())
}

// MakeAt is Make with an explicit time.
func MakeAt(t time.Time) string {
	var entropy [entropyBytes]byte

	_, _ = rand.Read(entropy[:])

	return t.Format("150405") + base64.RawURLEncoding.EncodeToString(entropy[:])
}
