/**
 * codepage/charset → encoding.Encoding resolution and byte transcoding,
 * grounded on the teacher's utils.go (rtfEncodeCodePageMap,
 * rtfEncodingCharsetMap, ConvertToUtf8), carried forward unchanged in spirit:
 * same table, same golang.org/x/text/encoding subpackages, adapted to return
 * an encoding.Encoding directly instead of an intermediate name string.
 */

package rtfconverter

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

var codepageEncodings = map[int]encoding.Encoding{
	437:  charmap.CodePage437,
	708:  charmap.ISO8859_6,
	819:  charmap.ISO8859_1,
	850:  charmap.CodePage850,
	852:  charmap.CodePage852,
	860:  charmap.CodePage860,
	862:  charmap.CodePage862,
	863:  charmap.CodePage863,
	865:  charmap.CodePage865,
	866:  charmap.CodePage866,
	874:  charmap.Windows874,
	932:  japanese.ShiftJIS,
	936:  simplifiedchinese.GBK,
	949:  korean.EUCKR,
	950:  traditionalchinese.Big5,
	1250: charmap.Windows1250,
	1251: charmap.Windows1251,
	1252: charmap.Windows1252,
	1253: charmap.Windows1253,
	1254: charmap.Windows1254,
	1255: charmap.Windows1255,
	1256: charmap.Windows1256,
	1257: charmap.Windows1257,
	1258: charmap.Windows1258,
	1361: korean.EUCKR,
}

var charsetEncodings = map[int]encoding.Encoding{
	0:   charmap.Windows1252,
	1:   charmap.Windows1252,
	2:   charmap.Windows1252,
	77:  charmap.Macintosh,
	128: japanese.ShiftJIS,
	129: korean.EUCKR,
	130: korean.EUCKR,
	134: simplifiedchinese.GBK,
	136: traditionalchinese.Big5,
	161: charmap.Windows1253,
	162: charmap.Windows1254,
	163: charmap.Windows1258,
	177: charmap.Windows1255,
	178: charmap.Windows1256,
	179: charmap.Windows1256,
	180: charmap.Windows1256,
	181: charmap.Windows1255,
	186: charmap.Windows1257,
	204: charmap.Windows1251,
	222: charmap.Windows874,
	238: charmap.Windows1250,
	254: charmap.CodePage437,
	255: charmap.CodePage437,
}

// encodingForCharset resolves an RTF destination charset keyword
// (ansi/mac/pc/pca) to its encoding.
func encodingForCharset(name string) encoding.Encoding {
	switch name {
	case "mac":
		return charmap.Macintosh
	case "pc":
		return charmap.CodePage437
	case "pca":
		return charmap.CodePage850
	default: // "ansi" and unknown default to Windows-1252
		return charmap.Windows1252
	}
}

// encodingForCodepage resolves an \ansicpg value.
func encodingForCodepage(cp int) encoding.Encoding {
	if enc, ok := codepageEncodings[cp]; ok {
		return enc
	}
	return charmap.Windows1252
}

// encodingForFontCharset resolves an \fcharset value.
func encodingForFontCharset(charset int) encoding.Encoding {
	if enc, ok := charsetEncodings[charset]; ok {
		return enc
	}
	return charmap.Windows1252
}

// transcodeToUTF8 decodes b from enc into UTF-8, passing bytes through
// unchanged if enc is nil or decoding fails.
func transcodeToUTF8(b []byte, enc encoding.Encoding) []byte {
	if enc == nil {
		return b
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return b
	}
	return out
}
