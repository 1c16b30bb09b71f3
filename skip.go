/**
 * discards an unrecognized, ignorable destination subtree without invoking
 * any handler — the generalized form of the teacher's startGroup/endGroup
 * depth bookkeeping, operating directly on the tokenizer instead of a
 * mutable currentGroup pointer
 */

package rtfconverter

// SkipBlock tokenizes from offset, tracking nested-group depth starting at
// initialDepth (0 means "we are already inside one unmatched open brace and
// want the offset just past its matching close"). GroupOpen increments
// depth; a GroupClose at depth 0 is the enclosing group's own close and ends
// the skip, otherwise it closes a nested group and decrements depth.
// Non-brace tokens consume length but do not alter depth.
func SkipBlock(source []byte, offset int, initialDepth int) int {
	depth := initialDepth
	pos := offset

	for pos < len(source) {
		tok := Next(source, pos)
		length := tok.Len()
		if length == 0 {
			length = 1 // defensive: never spin on a zero-length token
		}

		switch tok.Kind() {
		case GroupOpen:
			depth++
			pos += length
		case GroupClose:
			if depth == 0 {
				return pos + length
			}
			depth--
			pos += length
		default:
			pos += length
		}
	}

	return pos
}
