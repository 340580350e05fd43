package category

import (
	"errors"
	"testing"

	"molcover/internal/smiles"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSet_SortsAndDeduplicates(t *testing.T) {
	s := NewSet("b83", "a35", "", "b83", "Thioketone")
	assert.Equal(t, Set{"Thioketone", "a35", "b83"}, s)
	assert.True(t, s.Contains("a35"))
	assert.False(t, s.Contains("t7"))
	assert.Equal(t, 0, NewSet().Len())
	assert.Equal(t, Set{"x", "y"}, FromStrings([]string{"y", "x", "y"}))
}

func TestWrap(t *testing.T) {
	rec := smiles.Record{Index: 4, Notation: "C*"}
	base := errors.New("boom")

	err := Wrap(rec, base)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 4, ce.Index)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "molecule 4 (C*): boom", err.Error())

	assert.Same(t, ce, Wrap(smiles.Record{Index: 9}, err))
	assert.NoError(t, Wrap(rec, nil))
}
