// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

// MsgKey marks a string as a msgid that is translated later, away from the
// constant itself. cmd/i18n_extract collects constants assigned to MsgKey
// values along with constant msgids passed to [Tr].
type MsgKey string
