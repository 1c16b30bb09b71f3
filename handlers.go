/**
 * the built-in destination handlers: the PCDATA helper and the
 * meta/fonttbl/colortbl populators, per spec §4.4.2/§4.4.3. Grounded in the
 * teacher's font-table/color-table extraction (html-encapsulated-
 * converter.go parseFontTableGroup/parseFontInfoGroup/parseColorTableGroup),
 * adapted from walking a pre-built tree to reacting to tokens as the parser
 * core dispatches them.
 */

package rtfconverter

import "strings"

// PCDATAHandler is a prefabricated handler for destinations whose body is
// plain text (e.g. \objclass): it accumulates Data tokens and, on close,
// writes the joined text onto the parent frame under the key ControlName.
var PCDATAHandler Handler = pcdataHandler{}

type pcdataHandler struct{}

func (pcdataHandler) Handle(tok Token, source []byte, offset int, frame *Frame) error {
	switch tok.Kind() {
	case GroupOpen:
		frame.Set("pcdata", &strings.Builder{})
	case GroupClose:
		sb := pcdataBuilder(frame)
		if parent := frame.Parent(); parent != nil {
			parent.Set(frame.ControlName, sb.String())
		}
	case Data:
		pcdataBuilder(frame).WriteString(string(source[offset : offset+tok.Len()]))
	default:
		return newParseError(ErrUnexpectedInPCData, offset, frame.Path)
	}
	return nil
}

func pcdataBuilder(frame *Frame) *strings.Builder {
	v, ok := frame.Get("pcdata")
	if !ok {
		sb := &strings.Builder{}
		frame.Set("pcdata", sb)
		return sb
	}
	return v.(*strings.Builder)
}

func registerBuiltins(reg *HandlerRegistry) {
	reg.Register(";rtf", metaHandler{})
	reg.Register(";rtf;fonttbl", fontTableHandler{})
	reg.Register(";rtf;fonttbl;f", fontEntryHandler{})
	reg.Register(";rtf;colortbl", colorTableHandler{})
}

// metaHandler populates document-level fields from the root \rtf
// destination's own control word and its inline children.
type metaHandler struct{}

func (metaHandler) Handle(tok Token, source []byte, offset int, frame *Frame) error {
	switch tok.Kind() {
	case GroupOpen:
		if frame.OpenToken.HasValue() {
			frame.Document().Version = int(frame.OpenToken.Value())
		}
	case ControlWord:
		switch controlWordName(source, offset, tok) {
		case "ansi", "mac", "pc", "pca":
			frame.Document().Charset = controlWordName(source, offset, tok)
		case "ansicpg":
			if tok.HasValue() {
				frame.Document().Codepage = int(tok.Value())
			}
		case "deff":
			if tok.HasValue() {
				frame.Document().DefaultFontIndex = int(tok.Value())
			}
		}
	}
	return nil
}

type fontTableHandler struct{}

func (fontTableHandler) Handle(tok Token, source []byte, offset int, frame *Frame) error {
	if tok.Kind() == GroupOpen && frame.Document().Fonts == nil {
		frame.Document().Fonts = []*Font{}
	}
	return nil
}

var fontFamilyWords = map[string]bool{
	"fnil": true, "froman": true, "fswiss": true, "fmodern": true,
	"fscript": true, "fdecor": true, "ftech": true, "fbidi": true,
}

type fontEntryHandler struct{}

func (fontEntryHandler) Handle(tok Token, source []byte, offset int, frame *Frame) error {
	switch tok.Kind() {
	case GroupOpen:
		idx := 0
		if frame.OpenToken.HasValue() {
			idx = int(frame.OpenToken.Value())
		}
		font := &Font{Index: idx}
		doc := frame.Document()
		for len(doc.Fonts) <= idx {
			doc.Fonts = append(doc.Fonts, nil)
		}
		doc.Fonts[idx] = font
		frame.Set("font", font)
	case ControlWord:
		font := currentFont(frame)
		if font == nil {
			return nil
		}
		name := controlWordName(source, offset, tok)
		switch {
		case fontFamilyWords[name]:
			font.Family = strings.TrimPrefix(name, "f")
		case name == "fcharset":
			if tok.HasValue() {
				font.Charset = int(tok.Value())
			}
		case name == "fprq":
			if tok.HasValue() {
				font.Pitch = int(tok.Value())
			}
		case name == "ftnil" || name == "fttruetype":
			font.Type = strings.TrimPrefix(name, "ft")
		case name == "cpg":
			if tok.HasValue() {
				font.Codepage = int(tok.Value())
			}
		}
	case Data:
		font := currentFont(frame)
		if font == nil {
			return nil
		}
		text := string(source[offset : offset+tok.Len()])
		font.Name = strings.TrimSuffix(text, ";")
	}
	return nil
}

func currentFont(frame *Frame) *Font {
	v, ok := frame.Get("font")
	if !ok {
		return nil
	}
	f, _ := v.(*Font)
	return f
}

// colorTableHandler accumulates Color entries. The spec's "push a fresh
// zeroed color and retarget frame.color" on every ';' data token is applied
// lazily here — only once a subsequent red/green/blue word actually needs
// it — so a ';' that merely terminates the destination (immediately
// followed by the closing brace) does not leave a dangling empty trailing
// entry. See DESIGN.md, Open Questions.
type colorTableHandler struct{}

func (colorTableHandler) Handle(tok Token, source []byte, offset int, frame *Frame) error {
	switch tok.Kind() {
	case GroupOpen:
		doc := frame.Document()
		doc.Colors = []*Color{{}}
		frame.Set("color", doc.Colors[0])
		frame.Set("colorPending", false)
	case ControlWord:
		name := controlWordName(source, offset, tok)
		switch name {
		case "red", "green", "blue":
			color := currentColor(frame)
			if pending, _ := frame.Get("colorPending"); pending == true {
				doc := frame.Document()
				color = &Color{}
				doc.Colors = append(doc.Colors, color)
				frame.Set("color", color)
				frame.Set("colorPending", false)
			}
			if color == nil || !tok.HasValue() {
				return nil
			}
			switch name {
			case "red":
				color.R = int(tok.Value())
			case "green":
				color.G = int(tok.Value())
			case "blue":
				color.B = int(tok.Value())
			}
		default:
			return newParseError(ErrUnrecognizedInColorTable, offset, name)
		}
	case Data:
		text := string(source[offset : offset+tok.Len()])
		if strings.Contains(text, ";") {
			frame.Set("colorPending", true)
		}
	}
	return nil
}

func currentColor(frame *Frame) *Color {
	v, ok := frame.Get("color")
	if !ok {
		return nil
	}
	c, _ := v.(*Color)
	return c
}
