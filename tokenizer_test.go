package rtfconverter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextGroupBraces(t *testing.T) {
	tok := Next([]byte("{x}"), 0)
	assert.Equal(t, GroupOpen, tok.Kind())
	assert.Equal(t, 1, tok.Len())

	tok = Next([]byte("}"), 0)
	assert.Equal(t, GroupClose, tok.Kind())
}

func TestNextControlWordWithValue(t *testing.T) {
	tok := Next([]byte(`\ansicpg1252 rest`), 0)
	assert.Equal(t, ControlWord, tok.Kind())
	assert.Equal(t, 7, tok.ControlNameLength())
	assert.True(t, tok.HasValue())
	assert.Equal(t, int16(1252), tok.Value())
	// "\" + name(7) + digits(4) + trailing space eaten = 13
	assert.Equal(t, 13, tok.Len())
}

func TestNextControlWordNegativeValue(t *testing.T) {
	tok := Next([]byte(`\fs-20 `), 0)
	assert.True(t, tok.HasValue())
	assert.Equal(t, int16(-20), tok.Value())
}

func TestNextControlWordNoValue(t *testing.T) {
	tok := Next([]byte(`\par `), 0)
	assert.Equal(t, ControlWord, tok.Kind())
	assert.False(t, tok.HasValue())
}

func TestNextOneLetterControlWord(t *testing.T) {
	tok := Next([]byte(`\b1`), 0)
	assert.Equal(t, ControlWord, tok.Kind())
	assert.Equal(t, 1, tok.ControlNameLength())
	assert.True(t, tok.HasValue())
	assert.Equal(t, int16(1), tok.Value())
}

func TestNextIgnorableDestinationMarker(t *testing.T) {
	tok := Next([]byte(`\*\generator`), 0)
	assert.Equal(t, Ignorable, tok.Kind())
	assert.Equal(t, 2, tok.Len())
}

func TestNextHexCharacter(t *testing.T) {
	tok := Next([]byte(`\'e9`), 0)
	assert.Equal(t, Character, tok.Kind())
	assert.Equal(t, 4, tok.Len())
	assert.Equal(t, int16(0xe9), tok.Value())
}

func TestNextHexCharacterInvalidDigit(t *testing.T) {
	tok := Next([]byte(`\'zz`), 0)
	assert.Equal(t, Invalid, tok.Kind())
}

func TestNextHexCharacterTruncated(t *testing.T) {
	tok := Next([]byte(`\'e`), 0)
	assert.Equal(t, Invalid, tok.Kind())
}

func TestNextSymbol(t *testing.T) {
	tok := Next([]byte(`\~`), 0)
	assert.Equal(t, Symbol, tok.Kind())
	assert.Equal(t, int16('~'), tok.Value())
}

func TestNextSymbolUnrecognizedIsInvalid(t *testing.T) {
	tok := Next([]byte(`\!`), 0)
	assert.Equal(t, Invalid, tok.Kind())
}

func TestNextNewlineCollapsesRun(t *testing.T) {
	tok := Next([]byte("\r\n\r\nx"), 0)
	assert.Equal(t, ControlWord, tok.Kind())
	assert.Equal(t, 4, tok.Len())
	assert.True(t, tok.HasValue())
	assert.Equal(t, int16(13), tok.Value())
}

func TestNextData(t *testing.T) {
	tok := Next([]byte(`hello\b`), 0)
	assert.Equal(t, Data, tok.Kind())
	assert.Equal(t, 5, tok.Len())
}

func TestNextAtEndOfSource(t *testing.T) {
	tok := Next([]byte("abc"), 3)
	assert.Equal(t, Invalid, tok.Kind())
}
