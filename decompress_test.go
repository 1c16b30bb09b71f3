package rtfconverter

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildCompressedRTFHeader assembles the 16-byte MAPI compressed-RTF header
// Decompress expects: compressedSize, uncompressedSize, magic, crc32, all
// little-endian u32.
func buildCompressedRTFHeader(compressedSize, uncompressedSize, magic, crc uint32) []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], compressedSize)
	binary.LittleEndian.PutUint32(buf[4:8], uncompressedSize)
	binary.LittleEndian.PutUint32(buf[8:12], magic)
	binary.LittleEndian.PutUint32(buf[12:16], crc)
	return buf
}

// An uncompressed (magicUncompressed) payload is handed back with its
// 16-byte header stripped — the sender decided compression wasn't worth it,
// but the transport header is never part of the RTF text itself.
func TestDecompressUncompressedPassesThrough(t *testing.T) {
	payload := []byte(`{\rtf1\ansi Hi}`)
	header := buildCompressedRTFHeader(uint32(len(payload)+12), uint32(len(payload)), 0x414c454d, 0)
	src := append(header, payload...)

	out, err := Decompress(src)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestDecompressRejectsShortHeader(t *testing.T) {
	_, err := Decompress(make([]byte, 8))
	assert.Error(t, err)
}

func TestDecompressRejectsSizeMismatch(t *testing.T) {
	header := buildCompressedRTFHeader(999, 0, 0x414c454d, 0)
	_, err := Decompress(header)
	assert.Error(t, err)
}

func TestDecompressRejectsUnknownMagic(t *testing.T) {
	header := buildCompressedRTFHeader(12, 0, 0xdeadbeef, 0)
	_, err := Decompress(header)
	assert.Error(t, err)
}

// Once decompressed, the result is ordinary RTF source and feeds straight
// into NewParser like any other input.
func TestDecompressUncompressedFeedsParser(t *testing.T) {
	payload := []byte(`{\rtf1\ansi Hi}`)
	header := buildCompressedRTFHeader(uint32(len(payload)+12), uint32(len(payload)), 0x414c454d, 0)
	src := append(header, payload...)

	out, err := Decompress(src)
	require.NoError(t, err)

	p, err := NewParser(out, false, false)
	require.NoError(t, err)
	RegisterHTMLHandlers(p)
	doc, err := p.Document(false)
	require.NoError(t, err)
	assert.Contains(t, doc.HTML(), "Hi")
}

// RtfToHTMLFromTransport is the true end-to-end entry point: transport
// bytes in, rendered HTML out, without the caller ever touching Decompress.
func TestRtfToHTMLFromTransportUncompressed(t *testing.T) {
	payload := []byte(`{\rtf1\ansi Hi}`)
	header := buildCompressedRTFHeader(uint32(len(payload)+12), uint32(len(payload)), 0x414c454d, 0)
	src := append(header, payload...)

	html, err := RtfToHTMLFromTransport(src, "", nil, htmlVersion)
	require.NoError(t, err)
	assert.Equal(t, "Hi", html)
}
