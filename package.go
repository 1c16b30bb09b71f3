/**
 * the OLE Package binary decoder: a reverse-engineered grammar embedded as
 * hex text inside an \objdata destination, per spec §4.5. Grounded in
 * decompress.go's binary-cursor style (explicit offset bookkeeping,
 * getU32-style little-endian reads) but adapted to a hex-text cursor that
 * tolerates whitespace between digit pairs, since the source here is ASCII
 * hex rather than raw bytes.
 */

package rtfconverter

import "encoding/binary"

// PackageItem is one embedded file extracted from a Package object.
type PackageItem struct {
	Path string
	Data []byte
	Name string // basename of Path, split on '\'
}

// Package is the result of decoding one \objdata destination whose object
// class is "Package".
type Package struct {
	ProgID    string
	TotalSize int
	Strings   []string
	Label     string
	OLEType   int // 1 (linked) or 3 (static/embedded)
	Items     []PackageItem
}

// hexCursor walks ASCII hex digits in source[pos:end], skipping whitespace
// and CR/LF between digit pairs.
type hexCursor struct {
	source []byte
	pos    int
	end    int
}

func isHexSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func (c *hexCursor) skipSpace() {
	for c.pos < c.end && isHexSpace(c.source[c.pos]) {
		c.pos++
	}
}

func (c *hexCursor) nextHexDigit() (int, error) {
	c.skipSpace()
	if c.pos >= c.end {
		return 0, ErrPackageOutOfData
	}
	v, ok := hexDigitValue(c.source[c.pos])
	if !ok {
		return 0, ErrPackageBadHexDigit
	}
	c.pos++
	return v, nil
}

// readByte decodes one byte from two hex digits, whitespace-tolerant.
func (c *hexCursor) readByte() (byte, error) {
	hi, err := c.nextHexDigit()
	if err != nil {
		return 0, err
	}
	lo, err := c.nextHexDigit()
	if err != nil {
		return 0, err
	}
	return byte(hi<<4 | lo), nil
}

func (c *hexCursor) readBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		b, err := c.readByte()
		if err != nil {
			return nil, err
		}
		buf[i] = b
	}
	return buf, nil
}

func (c *hexCursor) readU32LE() (uint32, error) {
	buf, err := c.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

func (c *hexCursor) readU32BE() (uint32, error) {
	buf, err := c.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf), nil
}

func (c *hexCursor) readU16LE() (uint16, error) {
	buf, err := c.readBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

// readCString reads a length-prefixed (4-byte LE), zero-terminated byte
// string: the length includes the terminating zero.
func (c *hexCursor) readLengthPrefixedString() (string, int, error) {
	length, err := c.readU32LE()
	if err != nil {
		return "", 0, err
	}
	if length == 0 {
		return "", 4, ErrPackageUnterminated
	}
	body, err := c.readBytes(int(length))
	if err != nil {
		return "", 0, err
	}
	if body[len(body)-1] != 0 {
		return "", 0, ErrPackageUnterminated
	}
	return string(body[:len(body)-1]), 4 + int(length), nil
}

// readLengthPrefixedData reads a length-prefixed (4-byte LE) binary string;
// no terminator is required.
func (c *hexCursor) readLengthPrefixedData() ([]byte, int, error) {
	length, err := c.readU32LE()
	if err != nil {
		return nil, 0, err
	}
	body, err := c.readBytes(int(length))
	if err != nil {
		return nil, 0, err
	}
	return body, 4 + int(length), nil
}

// DecodePackage decodes the hex-encoded Package payload in
// source[begin:end] per spec §4.5.
func DecodePackage(source []byte, begin, end int) (*Package, error) {
	c := &hexCursor{source: source, pos: begin, end: end}
	fail := func(err error) (*Package, error) { return nil, newParseError(err, c.pos, "") }

	magic, err := c.readU32BE()
	if err != nil {
		return fail(err)
	}
	if magic != 0x01050000 {
		return fail(ErrPackageBadMagic)
	}

	constant, err := c.readU32LE()
	if err != nil {
		return fail(err)
	}
	if constant != 2 {
		return fail(ErrPackageBadConstant)
	}

	progID, _, err := c.readLengthPrefixedString()
	if err != nil {
		return fail(err)
	}

	zero1, err := c.readU32LE()
	if err != nil {
		return fail(err)
	}
	zero2, err := c.readU32LE()
	if err != nil {
		return fail(err)
	}
	if zero1 != 0 || zero2 != 0 {
		return fail(ErrPackageBadConstant)
	}

	totalSize32, err := c.readU32LE()
	if err != nil {
		return fail(err)
	}
	totalSize := int(totalSize32)
	if totalSize < 2 || totalSize > 1_048_576 {
		return fail(ErrPackageSizeRange)
	}

	bc := 0

	n, err := c.readU16LE()
	if err != nil {
		return fail(err)
	}
	count := int(n)
	if count < 2 || count > 10 {
		return fail(ErrPackageBadConstant)
	}
	bc += 2

	strs := make([]string, count)
	stringLenSum := 0
	for i := 0; i < count; i++ {
		s, consumed, err := c.readZeroTerminatedString()
		if err != nil {
			return fail(err)
		}
		strs[i] = s
		stringLenSum += consumed
	}
	term, err := c.readU16LE()
	if err != nil {
		return fail(err)
	}
	if term != 0 {
		return fail(ErrPackageBadTerminator)
	}
	bc += stringLenSum + 2

	oleType32, err := c.readU16LE()
	if err != nil {
		return fail(err)
	}
	oleType := int(oleType32)
	if oleType != 1 && oleType != 3 {
		return fail(ErrPackageUnsupportedOLEType)
	}

	pkg := &Package{
		ProgID:    progID,
		TotalSize: totalSize,
		Strings:   strs,
		Label:     strs[0],
		OLEType:   oleType,
	}

	switch oleType {
	case 3:
		for bc != totalSize-2 {
			path, pathConsumed, err := c.readLengthPrefixedString()
			if err != nil {
				return fail(err)
			}
			data, dataConsumed, err := c.readLengthPrefixedData()
			if err != nil {
				return fail(err)
			}
			pkg.Items = append(pkg.Items, PackageItem{Path: path, Data: data, Name: packageItemName(path)})
			bc += pathConsumed + dataConsumed
			if bc > totalSize-2 {
				return fail(ErrPackageSizeRange)
			}
		}
	case 1:
		m, err := c.readU16LE()
		if err != nil {
			return fail(err)
		}
		bc += 2
		for i := 0; i < int(m); i++ {
			path, consumed, err := c.readZeroTerminatedString()
			if err != nil {
				return fail(err)
			}
			if idx := lastIndexByte(path, '~'); idx >= 0 {
				path = pkg.Label
			}
			pkg.Items = append(pkg.Items, PackageItem{Path: path, Name: packageItemName(path)})
			bc += consumed
		}
		if bc != totalSize-2 {
			return fail(ErrPackageSizeRange)
		}
	}

	finalTerm, err := c.readU16LE()
	if err != nil {
		return fail(err)
	}
	if finalTerm != 0 {
		return fail(ErrPackageBadTerminator)
	}

	return pkg, nil
}

// readZeroTerminatedString reads a string with no length prefix, terminated
// by a single zero byte; it returns the decoded string and the number of
// bytes consumed including the terminator.
func (c *hexCursor) readZeroTerminatedString() (string, int, error) {
	var buf []byte
	for {
		b, err := c.readByte()
		if err != nil {
			return "", 0, err
		}
		if b == 0 {
			return string(buf), len(buf) + 1, nil
		}
		buf = append(buf, b)
	}
}

func packageItemName(path string) string {
	if idx := lastIndexByte(path, '\\'); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

func lastIndexByte(s string, b byte) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == b {
			return i
		}
	}
	return -1
}
