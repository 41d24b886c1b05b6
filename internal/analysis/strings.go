package analysis

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// StringTable maps the file offset of each null-terminated printable run to
// its bytes. Text slices alias the scanned buffer.
type StringTable struct {
	texts   map[uint32][]byte
	offsets []uint32 // ascending
}

// IsPrintable reports whether b is printable ASCII (space through tilde).
func IsPrintable(b byte) bool {
	return b >= 0x20 && b <= 0x7e
}

// ExtractStrings scans buf for runs of printable ASCII closed by a NUL byte.
// Runs shorter than minLength, runs interrupted by any other byte and a run
// still open at the end of buf are dropped.
func ExtractStrings(buf []byte, minLength int) *StringTable {
	if minLength < 1 {
		minLength = 1
	}
	st := &StringTable{texts: make(map[uint32][]byte)}

	inString := false
	start := 0
	for i, b := range buf {
		switch {
		case IsPrintable(b):
			if !inString {
				inString = true
				start = i
			}
		case b == 0:
			if inString && i-start >= minLength {
				off := uint32(start)
				st.texts[off] = buf[start:i:i]
				st.offsets = append(st.offsets, off)
			}
			inString = false
		default:
			inString = false
		}
	}
	return st
}

// Len returns the number of strings.
func (st *StringTable) Len() int { return len(st.offsets) }

// Text returns the string starting at off.
func (st *StringTable) Text(off uint32) ([]byte, bool) {
	t, ok := st.texts[off]
	return t, ok
}

// Offsets returns the start offsets in ascending order. The slice must not be
// modified.
func (st *StringTable) Offsets() []uint32 { return st.offsets }

// Entries returns the strings in ascending offset order.
func (st *StringTable) Entries() []StringEntry {
	out := make([]StringEntry, len(st.offsets))
	for i, off := range st.offsets {
		out[i] = StringEntry{Offset: off, Text: st.texts[off]}
	}
	return out
}

// EscapeUnprintable returns a string where printable Unicode runes are preserved.
// Control and unprintable runes are escaped as \uXXXX. Invalid UTF-8 is escaped as \xXX.
func EscapeUnprintable(b []byte) string {
	var sb strings.Builder
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			sb.WriteString(fmt.Sprintf("\\x%02X", b[0]))
		} else if unicode.IsPrint(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteString(fmt.Sprintf("\\u%04X", r))
		}
		b = b[size:]
	}
	return sb.String()
}
