package rtfconverter

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Richer documents mixing several control words are snapshotted rather than
// asserted field-by-field: the rendered fragment itself is the
// specification-level contract (spec §8's scenarios), and a snapshot catches
// any unintended drift across the whole markup shape at once.
func TestRtfToHTMLMixedFormattingSnapshot(t *testing.T) {
	src := []byte(`{\rtf1\ansi{\fonttbl{\f0\froman Times;}}{\colortbl;\red255\green0\blue0;}` +
		`\f0\cf1\b Warning\b0: \i low disk space\i0\par}`)

	html, err := RtfToHTML(src, "", nil, htmlVersion)
	require.NoError(t, err)

	snaps.MatchSnapshot(t, html)
}

// A bare brace group wrapping a run purely to scope local formatting — the
// idiom WordPad/Word use routinely (e.g. "{\b bold text}") — must parse and
// render instead of failing as an unhandled destination.
func TestRtfToHTMLScopedBoldGroupReverts(t *testing.T) {
	src := []byte(`{\rtf1 plain {\b bold} plain again}`)

	html, err := RtfToHTML(src, "", nil, htmlVersion)
	require.NoError(t, err)

	assert.Equal(t, "plain <B>bold</B> plain again", html)
}

func TestRtfToHTMLScopedColorGroupRestoresParentSpan(t *testing.T) {
	src := []byte(`{\rtf1{\colortbl;\red255\green0\blue0;\red0\green0\blue255;}` +
		`\cf1 red {\cf2 blue} red again\par}`)

	html, err := RtfToHTML(src, "", nil, htmlVersion)
	require.NoError(t, err)

	assert.Equal(t, `<SPAN style="color:#ff0000;">red `+
		`</SPAN><SPAN style="color:#0000ff;">blue</SPAN><SPAN style="color:#ff0000;"> red again`+
		"\r\n</SPAN>", html)
}

func TestRtfToHTMLNestedScopedGroups(t *testing.T) {
	src := []byte(`{\rtf1 {\b bold {\i bold italic} bold again}}`)

	html, err := RtfToHTML(src, "", nil, htmlVersion)
	require.NoError(t, err)

	assert.Equal(t, "<B>bold <I>bold italic</I> bold again</B>", html)
}

func TestRtfToHTMLEmbeddedPackageObject(t *testing.T) {
	src := []byte("{\\rtf1{\\object{\\objclass Package}{\\objdata " + samplePackageHex + "}}}")

	var sink OutputSink
	html, err := RtfToHTML(src, "http://files.example/", &sink, htmlVersion)
	require.NoError(t, err)

	assert.Contains(t, html, `<A href="http://files.example/x.txt">x.txt</A>`)
	require.Len(t, sink.Files, 1)
	assert.Equal(t, "x.txt", sink.Files[0].Name)
	assert.Equal(t, []byte("ABC"), sink.Files[0].Data)
}

func TestRtfToHTMLObjDataIgnoredWhenNotPackageClass(t *testing.T) {
	src := []byte("{\\rtf1{\\object{\\objclass OtherThing}{\\objdata " + samplePackageHex + "}}}")

	html, err := RtfToHTML(src, "", nil, htmlVersion)
	require.NoError(t, err)
	assert.NotContains(t, html, "x.txt")
}

func TestIsImageName(t *testing.T) {
	assert.True(t, isImageName("PHOTO.PNG"))
	assert.True(t, isImageName("scan.jpeg"))
	assert.False(t, isImageName("doc.txt"))
}

func TestHtmlEscape(t *testing.T) {
	assert.Equal(t, "a &lt;b&gt; &amp; c", htmlEscape("a <b> & c"))
}
