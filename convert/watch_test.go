package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsInput(t *testing.T) {
	assert.True(t, isInput("/data/anatomy.ttl"))
	assert.False(t, isInput("/data/anatomy_sssom.ttl"))
	assert.False(t, isInput("/data/anatomy.rdf"))
	assert.False(t, isInput("/data/notes.txt"))
}

func TestPairHashIsStableAndOrderSensitive(t *testing.T) {
	a := pairHash("http://a/x", "http://b/y")
	b := pairHash("http://a/x", "http://b/y")
	assert.Equal(t, a, b)
	assert.Len(t, a, 16)

	// Swapping the pair must change the identifier; the separator
	// keeps ("ab","c") and ("a","bc") apart too.
	assert.NotEqual(t, a, pairHash("http://b/y", "http://a/x"))
	assert.NotEqual(t, pairHash("ab", "c"), pairHash("a", "bc"))
}

func TestStem(t *testing.T) {
	assert.Equal(t, "anatomy", stem("/data/anatomy.ttl"))
	assert.Equal(t, "anatomy.align", stem("anatomy.align.ttl"))
}
