package sanitize

import "github.com/microcosm-cc/bluemonday"

var ugc = bluemonday.UGCPolicy()
var strict = bluemonday.StrictPolicy()

// UserContent sanitizes rich user supplied content like trip descriptions
// and chat messages, allowing basic formatting but stripping anything
// script-bearing.
func UserContent(value string) string {
	return ugc.Sanitize(value)
}

// PlainText strips all markup from user supplied single-line values
// such as trip names and packing list entries.
func PlainText(value string) string {
	return strict.Sanitize(value)
}
