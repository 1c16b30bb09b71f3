/**
 * the public entry points: the one-shot conversion function and the
 * embedder-facing parser constructor, per spec §6. Grounded on the
 * teacher's rtfConverter (converter.go), reduced from its
 * LoadFile/SetBytes/Convert(exportType) surface to the spec's single
 * rtf_to_html(rtf_text, base_url, output_sink, version) function, since the
 * new Parser already exposes embedder access for anything finer-grained.
 */

package rtfconverter

// OutputSink collects side-channel outputs produced while converting: the
// files extracted from embedded OLE Package objects (spec §6
// "output_sink... appends extracted Package items under a files
// collection").
type OutputSink struct {
	Files []PackageItem
}

// htmlVersion is the only version RtfToHTML currently accepts (spec §6).
const htmlVersion = 2

// RtfToHTML converts rtfText into an HTML string. baseURL is prepended to
// filenames extracted from embedded Package objects for hyperlinks and IMG
// src attributes. sink, if non-nil, accumulates those extracted files.
// version must equal 2.
func RtfToHTML(rtfText []byte, baseURL string, sink *OutputSink, version int) (string, error) {
	if version != htmlVersion {
		return "", ErrUnsupportedHTMLVersion
	}

	p, err := NewParser(rtfText, false, false)
	if err != nil {
		return "", err
	}

	RegisterHTMLHandlers(p)

	doc, _ := p.Document(true) // pre-running handle to seed baseURL/sink
	doc.SetExtra("baseURL", baseURL)
	if sink != nil {
		doc.SetExtra("sink", sink)
	}

	doc, err = p.Document(false)
	if err != nil {
		return "", err
	}

	return doc.HTML(), nil
}

// RtfToHTMLFromTransport converts rtfTransportBytes — RTF still wrapped in
// its 16-byte MAPI compressed-RTF transport header, optionally with an
// LZ77-compressed body, as delivered e.g. inside a TNEF attachment — into
// HTML, by running Decompress ahead of RtfToHTML. baseURL, sink, and version
// behave exactly as in RtfToHTML.
func RtfToHTMLFromTransport(rtfTransportBytes []byte, baseURL string, sink *OutputSink, version int) (string, error) {
	rtfText, err := Decompress(rtfTransportBytes)
	if err != nil {
		return "", err
	}
	return RtfToHTML(rtfText, baseURL, sink, version)
}
