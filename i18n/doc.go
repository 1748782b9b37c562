// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package i18n translates user-visible error page text using GNU gettext .po
catalogues embedded from the po/ directory.

Use the original English text as the msgid:

	i18n.Tr(ctx, "This page could not be found")

The locale is carried in the context (see [WithTag] and [WithRequest]).
Missing translations, and calls made before [Setup], return the msgid
unchanged, so rendering never depends on the catalogues being present.
*/
package i18n
