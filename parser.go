/**
 * the generic destination-dispatch parser: walks the brace stack, resolves
 * each open brace to a handler list by destination name or stack path, and
 * routes every token to the resolved handlers. Generalizes the teacher's
 * RtfStructure.Parse/startGroup/endGroup (structure.go) from "build a tree"
 * to "dispatch to registered handlers".
 */

package rtfconverter

// ParserOptions configures a Parser. Strict is reserved (spec §6: "strict is
// reserved"). SuppressDefaults, when true, skips registering the built-in
// meta/fonttbl/colortbl handlers.
type ParserOptions struct {
	Strict           bool
	SuppressDefaults bool
}

// Parser holds the state of a single, synchronous parse: source, cursor,
// document root, frame stack, handler registry. Nothing is shared across
// Parser instances (spec §5 "Shared state").
type Parser struct {
	source []byte
	pos    int

	doc      *Document
	stack    Stack
	registry *HandlerRegistry

	// fallback, when set, handles any destination that resolves to zero
	// registered handlers and isn't marked ignorable, instead of failing the
	// parse with ErrUnhandledDestination. Kept separate from registry
	// instead of a blanket regex registration: Resolve unions every matching
	// dictionary, so a catch-all regex alongside an exact-path registration
	// (e.g. ";rtf;colortbl") would run both handlers on the same frame.
	fallback Handler

	opts ParserOptions
	done bool
}

// NewParser constructs a parser over rtfText. strict is reserved for future
// use; suppressDefaults skips registering the built-in destination
// handlers (meta/fonttbl/colortbl) described in spec §4.4.3.
func NewParser(rtfText []byte, strict, suppressDefaults bool) (*Parser, error) {
	if len(rtfText) == 0 {
		return nil, ErrMissingSource
	}

	p := &Parser{
		source:   rtfText,
		doc:      &Document{},
		registry: NewHandlerRegistry(),
		opts:     ParserOptions{Strict: strict, SuppressDefaults: suppressDefaults},
	}

	if !suppressDefaults {
		registerBuiltins(p.registry)
	}

	return p, nil
}

// Register adds h for destination; see HandlerRegistry.Register.
func (p *Parser) Register(destination interface{}, h Handler) {
	p.registry.Register(destination, h)
}

// SetFallbackHandler sets the handler used for a non-ignorable destination
// that the registry can't resolve by name, path, or regex. Without one, such
// a destination fails the parse (spec §6, ErrUnhandledDestination).
func (p *Parser) SetFallbackHandler(h Handler) {
	p.fallback = h
}

// Document runs the parser to completion (caching the result) and returns
// the document root, or — when incomplete is true — returns the
// document-under-construction without advancing the parser at all (spec §5:
// "never yields control between tokens").
func (p *Parser) Document(incomplete bool) (*Document, error) {
	if incomplete {
		return p.doc, nil
	}
	if p.done {
		return p.doc, nil
	}

	if err := p.run(); err != nil {
		return p.doc, err
	}
	p.done = true
	return p.doc, nil
}

func (p *Parser) run() error {
	for p.pos < len(p.source) {
		tok := Next(p.source, p.pos)

		switch tok.Kind() {
		case GroupOpen:
			if err := p.openGroup(tok); err != nil {
				return err
			}
		case GroupClose:
			if err := p.closeGroup(tok); err != nil {
				return err
			}
		default:
			if err := p.dispatch(tok, p.pos); err != nil {
				return err
			}
			p.pos += tok.Len()
		}
	}
	return nil
}

func (p *Parser) openGroup(braceTok Token) error {
	bps := p.pos
	pos := bps + braceTok.Len()

	ignorable := false
	t2 := Next(p.source, pos)
	if t2.Kind() == Ignorable {
		ignorable = true
		pos += t2.Len()
	}

	t3 := Next(p.source, pos)
	if t3.Kind() != ControlWord {
		return newParseError(ErrUnexpectedAfterOpen, pos, "")
	}

	ctl := controlWordName(p.source, pos, t3)

	parentIndex := len(p.stack) - 1
	path := ";" + ctl
	if parentIndex >= 0 {
		path = p.stack[parentIndex].Path + ";" + ctl
	}

	handlers := p.registry.Resolve(ctl, path)

	if len(handlers) == 0 {
		if ignorable {
			p.pos = SkipBlock(p.source, bps+1, 0)
			return nil
		}
		if p.fallback == nil {
			return newParseError(ErrUnhandledDestination, bps, path)
		}
		handlers = []Handler{p.fallback}
	}

	frame := &Frame{
		parser:      p,
		index:       len(p.stack),
		parentIndex: parentIndex,
		OpenToken:   t3,
		OpenOffset:  pos,
		ControlName: ctl,
		Path:        path,
		Ignorable:   ignorable,
		handlers:    handlers,
	}
	p.stack = append(p.stack, frame)

	for _, h := range handlers {
		if err := h.Handle(braceTok, p.source, bps, frame); err != nil {
			return err
		}
	}

	// Cursor proceeds from the first token after the destination's control
	// word; the control word itself is available via frame.OpenToken /
	// frame.OpenOffset, not as an ordinary dispatch call.
	p.pos = pos + t3.Len()
	return nil
}

func (p *Parser) closeGroup(tok Token) error {
	if len(p.stack) == 0 {
		return newParseError(ErrTooManyCloses, p.pos, "")
	}

	frame := p.stack[len(p.stack)-1]
	for _, h := range frame.handlers {
		if err := h.Handle(tok, p.source, p.pos, frame); err != nil {
			return err
		}
	}

	p.stack = p.stack[:len(p.stack)-1]
	p.pos += tok.Len()
	return nil
}

func (p *Parser) dispatch(tok Token, offset int) error {
	frame := p.stack.Current()
	if frame == nil {
		return nil // tokens outside the outermost group are dropped
	}
	for _, h := range frame.handlers {
		if err := h.Handle(tok, p.source, offset, frame); err != nil {
			return err
		}
	}
	return nil
}

// controlWordName returns the letters making up a ControlWord token's name.
func controlWordName(source []byte, offset int, tok Token) string {
	n := tok.ControlNameLength()
	start := offset + 1
	end := start + n
	if end > len(source) {
		end = len(source)
	}
	return string(source[start:end])
}
