package vectorindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClauseMatches(t *testing.T) {
	doc := Document{
		"source_track_id":      "track-a",
		"start_sec":            12.5,
		"segment_index":        3,
		"excluded_from_search": false,
	}

	tests := []struct {
		name     string
		clause   Clause
		expected bool
	}{
		{"EqString", Eq("source_track_id", "track-a"), true},
		{"EqStringMiss", Eq("source_track_id", "track-b"), false},
		{"EqIntFloatCrossType", Eq("segment_index", 3.0), true},
		{"EqBool", Eq("excluded_from_search", false), true},
		{"NeHit", Ne("source_track_id", "track-b"), true},
		{"NeMiss", Ne("source_track_id", "track-a"), false},
		{"NeMissingKeyMatches", Ne("excluded", true), true},
		{"EqMissingKey", Eq("excluded", true), false},
		{"Gt", Gt("start_sec", 10), true},
		{"GtEqualBoundary", Gt("start_sec", 12.5), false},
		{"Gte", Gte("start_sec", 12.5), true},
		{"Lt", Lt("start_sec", 20), true},
		{"Lte", Lte("start_sec", 12.5), true},
		{"GtNonNumeric", Gt("source_track_id", 1), false},
		{"In", In("source_track_id", "track-b", "track-a"), true},
		{"InMiss", In("source_track_id", "track-b", "track-c"), false},
		{"InMissingKey", In("missing", "x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.clause.Matches(doc))
		})
	}
}

func TestWhereMatches(t *testing.T) {
	doc := Document{
		"source_track_id": "track-a",
		"start_sec":       30.0,
	}

	t.Run("conjunction", func(t *testing.T) {
		w := Where{Ne("source_track_id", "track-b"), Gte("start_sec", 10)}
		assert.True(t, w.Matches(doc))

		w = Where{Ne("source_track_id", "track-b"), Gte("start_sec", 60)}
		assert.False(t, w.Matches(doc))
	})

	t.Run("nil matches everything", func(t *testing.T) {
		var w Where
		assert.True(t, w.Matches(doc))
		assert.True(t, w.Matches(nil))
	})
}

func TestOperatorString(t *testing.T) {
	assert.Equal(t, "$eq", OpEqual.String())
	assert.Equal(t, "$ne", OpNotEqual.String())
	assert.Equal(t, "$gt", OpGreaterThan.String())
	assert.Equal(t, "$gte", OpGreaterEqual.String())
	assert.Equal(t, "$lt", OpLessThan.String())
	assert.Equal(t, "$lte", OpLessEqual.String())
	assert.Equal(t, "$in", OpIn.String())
}
