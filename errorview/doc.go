// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package errorview renders the default fallback error page.

A page is produced in two steps. First, [GetInitialProps] derives [Props]
from the failed request (a [Context]); then [View] renders those props as a
templ component. The component registers the document title with package
head, so it is normally rendered inside [head.Document].

Applications wanting a different error page wrap their own hook and renderer
in a [Page]; the server uses [Page.HasCustomInitialProps] to tell whether the
default hook was replaced.
*/
package errorview
