// Package mimetype resolves the Content-Type of served files.
//
// A small ordered table of suffix overrides is checked first. Anything the
// table does not cover falls back to the standard extension lookup.
package mimetype

import (
	"mime"
	"path"
	"strings"
)

// DefaultType is returned when nothing is known about a name.
const DefaultType = "application/octet-stream"

// Override maps a file name suffix to a Content-Type.
type Override struct {
	// Suffix is matched against the end of the path, case-sensitively (e.g. ".wasm").
	Suffix string `toml:"suffix" yaml:"suffix"`
	// ContentType is sent as-is when Suffix matches.
	ContentType string `toml:"content_type" yaml:"content_type"`
}

// DefaultOverrides are checked before anything else, in this order.
var DefaultOverrides = []Override{
	{Suffix: ".js", ContentType: "application/javascript; charset=utf-8"},
	{Suffix: ".wasm", ContentType: "application/wasm"},
	{Suffix: ".html", ContentType: "text/html; charset=utf-8"},
	{Suffix: ".ico", ContentType: "image/x-icon"},
}

// Table is an ordered list of overrides. It is not modified after NewTable
// returns, so a single Table can be shared between handlers.
type Table struct {
	overrides []Override
}

// NewTable returns a table holding DefaultOverrides followed by extra.
func NewTable(extra ...Override) *Table {
	overrides := make([]Override, 0, len(DefaultOverrides)+len(extra))
	overrides = append(overrides, DefaultOverrides...)
	overrides = append(overrides, extra...)
	return &Table{overrides: overrides}
}

// TypeByPath returns the Content-Type for name.
//
// The first override whose suffix name ends with wins. Otherwise the result
// of TypeByExtension is returned.
func (t *Table) TypeByPath(name string) string {
	for _, o := range t.overrides {
		if strings.HasSuffix(name, o.Suffix) {
			return o.ContentType
		}
	}
	return TypeByExtension(name)
}

// Overrides returns a copy of the table in priority order.
func (t *Table) Overrides() []Override {
	out := make([]Override, len(t.overrides))
	copy(out, t.overrides)
	return out
}

// TypeByExtension returns a guess at the mime type from the extension of
// name, or DefaultType if there is none.
func TypeByExtension(name string) string {
	mimeType := mime.TypeByExtension(path.Ext(name))
	if !strings.ContainsRune(mimeType, '/') {
		mimeType = DefaultType
	}
	return mimeType
}
