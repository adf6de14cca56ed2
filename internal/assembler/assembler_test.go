package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.gopad.dev/highlight/types"
)

func TestAssembleNonOverlapping(t *testing.T) {
	out := Assemble([]types.Span{
		{Start: 0, End: 10, Capture: "keyword"},
	})
	require.Len(t, out, 1)
	assert.Equal(t, types.Span{Start: 0, End: 10, Capture: "keyword"}, out[0])
}

func TestAssembleNestedPrefersMoreSpecific(t *testing.T) {
	out := Assemble([]types.Span{
		{Start: 0, End: 20, Capture: "string"},
		{Start: 5, End: 10, Capture: "string.escape"},
	})
	require.Len(t, out, 3)
	assert.Equal(t, "string", out[0].Capture)
	assert.Equal(t, uint32(0), out[0].Start)
	assert.Equal(t, uint32(5), out[0].End)
	assert.Equal(t, "string.escape", out[1].Capture)
	assert.Equal(t, uint32(5), out[1].Start)
	assert.Equal(t, uint32(10), out[1].End)
	assert.Equal(t, "string", out[2].Capture)
	assert.Equal(t, uint32(10), out[2].Start)
	assert.Equal(t, uint32(20), out[2].End)
}

func TestAssembleInnermostWinsOnTiedSpecificity(t *testing.T) {
	out := Assemble([]types.Span{
		{Start: 0, End: 10, Capture: "function"},
		{Start: 2, End: 4, Capture: "variable"},
	})
	require.Len(t, out, 3)
	assert.Equal(t, uint32(2), out[1].Start)
	assert.Equal(t, uint32(4), out[1].End)
}

func TestAssembleMoreSpecificWinsOnIdenticalRange(t *testing.T) {
	out := Assemble([]types.Span{
		{Start: 0, End: 10, Capture: "keyword"},
		{Start: 0, End: 10, Capture: "keyword.control"},
	})
	require.Len(t, out, 1)
	assert.Equal(t, "keyword.control", out[0].Capture)
}

func TestAssembleIsIdempotent(t *testing.T) {
	in := []types.Span{
		{Start: 0, End: 20, Capture: "string"},
		{Start: 5, End: 10, Capture: "string.escape"},
		{Start: 12, End: 15, Capture: "variable"},
	}
	once := Assemble(in)
	twice := Assemble(once)
	assert.Equal(t, once, twice)
}

func TestAssembleDropsZeroWidth(t *testing.T) {
	out := Assemble([]types.Span{{Start: 5, End: 5, Capture: "keyword"}})
	assert.Empty(t, out)
}

func TestAssembleEmptyInput(t *testing.T) {
	assert.Empty(t, Assemble(nil))
}
