package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombinationRecord_CanonicalBytes_Deterministic(t *testing.T) {
	a := CombinationRecord{
		Rank:      3,
		TotalLine: "总属性值: 120",
		PowerLine: "战斗力: 9999",
		Modules:   []string{"帽子A", "手套B"},
		AttrDist:  []string{"智力加持: 12"},
	}

	// Same field values assembled in a different order.
	var b CombinationRecord
	b.AttrDist = []string{"智力加持: 12"}
	b.Modules = []string{"帽子A", "手套B"}
	b.PowerLine = "战斗力: 9999"
	b.TotalLine = "总属性值: 120"
	b.Rank = 3

	ba, err := a.CanonicalBytes()
	require.NoError(t, err)
	bb, err := b.CanonicalBytes()
	require.NoError(t, err)

	assert.Equal(t, ba, bb)
}

func TestCombinationRecord_CanonicalBytes_NilSlicesEqualEmpty(t *testing.T) {
	withNil := CombinationRecord{Rank: 1}
	withEmpty := CombinationRecord{Rank: 1, Modules: []string{}, AttrDist: []string{}}

	a, err := withNil.CanonicalBytes()
	require.NoError(t, err)
	b, err := withEmpty.CanonicalBytes()
	require.NoError(t, err)

	assert.Equal(t, a, b)

	// The receiver itself must stay untouched.
	assert.Nil(t, withNil.Modules)
}

func TestCombinationRecord_CanonicalBytes_FieldSensitive(t *testing.T) {
	a := CombinationRecord{Rank: 1, Modules: []string{"帽子A"}}
	b := CombinationRecord{Rank: 1, Modules: []string{"帽子B"}}

	ba, err := a.CanonicalBytes()
	require.NoError(t, err)
	bb, err := b.CanonicalBytes()
	require.NoError(t, err)

	assert.NotEqual(t, ba, bb)
}

func TestRunKindAndStatusStrings(t *testing.T) {
	assert.Equal(t, "decode", RunKindDecode.String())
	assert.Equal(t, "parse", RunKindParse.String())
	assert.Equal(t, "unknown", RunKind(99).String())
	assert.Equal(t, "ok", RunStatusOK.String())
	assert.Equal(t, "failed", RunStatusFailed.String())
}
