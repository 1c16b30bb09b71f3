package rtfconverter

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubHandler struct{ name string }

func (stubHandler) Handle(Token, []byte, int, *Frame) error { return nil }

func TestRegistryResolveByName(t *testing.T) {
	reg := NewHandlerRegistry()
	h := stubHandler{"a"}
	reg.Register("fonttbl", h)

	got := reg.Resolve("fonttbl", ";rtf;fonttbl")
	assert.Equal(t, []Handler{h}, got)
}

func TestRegistryResolveByPath(t *testing.T) {
	reg := NewHandlerRegistry()
	h := stubHandler{"a"}
	reg.Register(";rtf;colortbl", h)

	assert.Equal(t, []Handler{h}, reg.Resolve("colortbl", ";rtf;colortbl"))
	assert.Empty(t, reg.Resolve("colortbl", ";rtf;shapes;colortbl"))
}

func TestRegistryResolveByRegex(t *testing.T) {
	reg := NewHandlerRegistry()
	h := stubHandler{"a"}
	reg.Register(regexp.MustCompile(`;rtf;fonttbl;f\d*$`), h)

	assert.Equal(t, []Handler{h}, reg.Resolve("f", ";rtf;fonttbl;f0"))
	assert.Empty(t, reg.Resolve("f", ";rtf;fonttbl;fx"))
}

func TestRegistryDedupsAcrossDictionaries(t *testing.T) {
	reg := NewHandlerRegistry()
	h := stubHandler{"a"}
	reg.Register("x", h)
	reg.Register(";rtf;x", h)
	reg.Register(regexp.MustCompile(`;x$`), h)

	got := reg.Resolve("x", ";rtf;x")
	assert.Len(t, got, 1)
}

func TestRegistryIgnoresDuplicateRegisterCalls(t *testing.T) {
	reg := NewHandlerRegistry()
	h := stubHandler{"a"}
	reg.Register("x", h)
	reg.Register("x", h)

	assert.Len(t, reg.Resolve("x", ";rtf;x"), 1)
}

func TestRegistryCacheInvalidatedOnRegister(t *testing.T) {
	reg := NewHandlerRegistry()
	h1 := stubHandler{"a"}
	reg.Register("x", h1)
	_ = reg.Resolve("x", ";rtf;x") // populate cache

	h2 := stubHandler{"b"}
	reg.Register("x", h2)

	got := reg.Resolve("x", ";rtf;x")
	assert.Len(t, got, 2)
}
