// Package htmlsanitize strips dangerous markup from user-supplied HTML
// before it is stored. Group descriptions arrive as HTML fragments from
// the surrounding platform and are rendered elsewhere, so they get the
// UGC treatment.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var ugc = bluemonday.UGCPolicy()

// Sanitize returns s with everything outside the UGC allowlist removed.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}
