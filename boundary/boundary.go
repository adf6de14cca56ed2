// Package boundary translates between UTF-8 byte offsets, the engine's
// only internal coordinate system, and UTF-16 code-unit offsets, which
// some host languages index strings in. It is the one place in the
// engine allowed to know UTF-16 exists. Building it on unicode/utf8 and
// unicode/utf16 rather than a
// third-party library is a deliberate stdlib choice — no repo in the
// corpus carries a dedicated text-offset-conversion dependency, and the
// algorithm is a single linear scan with no parsing or locale concerns
// a library would meaningfully improve on.
package boundary

import (
	"unicode/utf16"
	"unicode/utf8"

	"go.gopad.dev/highlight/types"
)

// Map holds two parallel offset tables built from one pass over a source
// buffer: byteToUnit[b] is the UTF-16 code-unit offset corresponding to
// byte offset b, and unitToByte[u] is the inverse. Both are indexed up to
// and including the length of their respective coordinate space, so a
// span's End (exclusive) always resolves.
type Map struct {
	byteToUnit []uint32
	unitToByte []uint32
}

// New builds a Map for source in a single forward scan.
func New(source []byte) *Map {
	byteToUnit := make([]uint32, len(source)+1)
	var unitToByte []uint32

	var unit uint32
	i := 0
	for i < len(source) {
		byteToUnit[i] = unit
		r, size := utf8.DecodeRune(source[i:])
		if r == utf8.RuneError && size <= 1 {
			size = 1
		}
		n := 1
		if r > 0xFFFF {
			n = 2
		}
		for k := 0; k < n; k++ {
			unitToByte = append(unitToByte, uint32(i))
		}
		for k := 1; k < size; k++ {
			byteToUnit[i+k] = unit + uint32(n)
		}
		unit += uint32(n)
		i += size
	}
	byteToUnit[len(source)] = unit
	unitToByte = append(unitToByte, uint32(len(source)))

	return &Map{byteToUnit: byteToUnit, unitToByte: unitToByte}
}

// ByteToUnit converts a byte offset to a UTF-16 code-unit offset.
func (m *Map) ByteToUnit(byteOffset uint32) uint32 {
	if int(byteOffset) >= len(m.byteToUnit) {
		byteOffset = uint32(len(m.byteToUnit) - 1)
	}
	return m.byteToUnit[byteOffset]
}

// UnitToByte converts a UTF-16 code-unit offset to a byte offset.
func (m *Map) UnitToByte(unitOffset uint32) uint32 {
	if int(unitOffset) >= len(m.unitToByte) {
		unitOffset = uint32(len(m.unitToByte) - 1)
	}
	return m.unitToByte[unitOffset]
}

// UnitSpan is the UTF-16 code-unit-offset analogue of [types.Span].
type UnitSpan struct {
	Start    uint32
	End      uint32
	Capture  string
	Language string
}

// TranslateSpans produces the code-unit-offset view of a flat byte-offset
// span stream, for hosts that index strings in UTF-16 code units.
func (m *Map) TranslateSpans(spans []types.Span) []UnitSpan {
	out := make([]UnitSpan, len(spans))
	for i, sp := range spans {
		out[i] = UnitSpan{
			Start:    m.ByteToUnit(sp.Start),
			End:      m.ByteToUnit(sp.End),
			Capture:  sp.Capture,
			Language: sp.Language,
		}
	}
	return out
}

// unitsInRune reports the UTF-16 code-unit width of the rune's encoding,
// used only by tests to cross-check New's surrogate-pair handling.
func unitsInRune(r rune) int {
	return len(utf16.Encode([]rune{r}))
}
