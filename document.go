/**
 * the mutable model handlers accumulate into: meta, font table, color
 * table, and the HTML rendering, plus whatever collaborator-defined keys
 * handlers choose to stash in Extra
 */

package rtfconverter

import "strings"

// Font is one entry of the font table, addressed by its RTF font index.
type Font struct {
	Index    int
	Family   string // froman/fswiss/... with the leading "f" dropped
	Charset  int
	Pitch    int
	Type     string // truetype/nil with the leading "ft" dropped
	Codepage int
	Name     string
}

// Color is one entry of the color table.
type Color struct {
	R, G, B int
}

// Document accumulates everything the built-in and collaborator handlers
// produce while a Parser walks an RTF source.
type Document struct {
	Version           int
	Charset           string
	Codepage          int
	DefaultFontIndex  int
	Fonts             []*Font
	Colors            []*Color
	html              strings.Builder
	Extra             map[string]interface{}
}

// HTML returns the HTML rendered so far.
func (d *Document) HTML() string {
	return d.html.String()
}

// WriteHTML appends s to the document's HTML accumulator. Exported so
// collaborator handlers outside this package can emit into the same
// document the built-in handlers populate.
func (d *Document) WriteHTML(s string) {
	d.html.WriteString(s)
}

// SetExtra stashes a collaborator-defined value under key, lazily
// initializing the map.
func (d *Document) SetExtra(key string, value interface{}) {
	if d.Extra == nil {
		d.Extra = map[string]interface{}{}
	}
	d.Extra[key] = value
}

// GetExtra retrieves a collaborator-defined value.
func (d *Document) GetExtra(key string) (interface{}, bool) {
	if d.Extra == nil {
		return nil, false
	}
	v, ok := d.Extra[key]
	return v, ok
}

// FontAt returns document.Fonts[i] if present, else nil.
func (d *Document) FontAt(i int) *Font {
	if i < 0 || i >= len(d.Fonts) {
		return nil
	}
	return d.Fonts[i]
}

// ColorAt returns document.Colors[i] if present, else nil.
func (d *Document) ColorAt(i int) *Color {
	if i < 0 || i >= len(d.Colors) {
		return nil
	}
	return d.Colors[i]
}
