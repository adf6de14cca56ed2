package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.gopad.dev/highlight/types"
)

func assertNonOverlapping(t *testing.T, spans []types.Span) {
	t.Helper()
	sorted := Sort(append([]types.Span{}, spans...))
	for i := 1; i < len(sorted); i++ {
		assert.LessOrEqualf(t, sorted[i-1].End, sorted[i].Start,
			"spans %+v and %+v overlap", sorted[i-1], sorted[i])
	}
}

func TestSpliceIncludeChildrenClipsParentAroundChild(t *testing.T) {
	parent := []types.Span{{Start: 0, End: 20, Capture: "tag", Language: "html"}}
	children := []types.Span{{Start: 7, End: 12, Capture: "property", Language: "css"}}

	out := Splice(parent, 7, 12, true, children)

	assertNonOverlapping(t, out)
	assert.Contains(t, out, types.Span{Start: 7, End: 12, Capture: "property", Language: "css"})

	var sawLeft, sawRight bool
	for _, sp := range out {
		if sp.Start == 0 && sp.End == 7 {
			sawLeft = true
		}
		if sp.Start == 12 && sp.End == 20 {
			sawRight = true
		}
	}
	assert.True(t, sawLeft, "expected the parent span to survive clipped to the left of the child")
	assert.True(t, sawRight, "expected the parent span to survive clipped to the right of the child")
}

func TestSpliceIncludeChildrenWithMultipleChildrenStaysNonOverlapping(t *testing.T) {
	parent := []types.Span{{Start: 0, End: 30, Capture: "tag"}}
	children := []types.Span{
		{Start: 5, End: 10, Capture: "property"},
		{Start: 15, End: 20, Capture: "value"},
	}

	out := Splice(parent, 5, 20, true, children)
	assertNonOverlapping(t, out)
	assert.Contains(t, out, children[0])
	assert.Contains(t, out, children[1])
}

func TestSpliceExcludeChildrenDropsContainedParentSpans(t *testing.T) {
	parent := []types.Span{
		{Start: 0, End: 2, Capture: "tag"},
		{Start: 2, End: 5, Capture: "keyword"},
	}
	children := []types.Span{{Start: 2, End: 5, Capture: "string"}}

	out := Splice(parent, 2, 5, false, children)
	assertNonOverlapping(t, out)
	assert.Len(t, out, 2)
}

func TestSpliceExcludeChildrenClipsOverlappingParentSpan(t *testing.T) {
	parent := []types.Span{{Start: 0, End: 10, Capture: "tag"}}
	children := []types.Span{{Start: 4, End: 6, Capture: "string"}}

	out := Splice(parent, 4, 6, false, children)
	assertNonOverlapping(t, out)
	assert.Len(t, out, 3)
}
