package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentID(t *testing.T) {
	t.Run("pads the index to four digits", func(t *testing.T) {
		s := Segment{TrackID: "track-a", Index: 3}
		assert.Equal(t, "track-a::seg_0003", s.ID())
	})

	t.Run("keeps wider indexes intact", func(t *testing.T) {
		s := Segment{TrackID: "track-a", Index: 12345}
		assert.Equal(t, "track-a::seg_12345", s.ID())
	})
}

func TestChainStrategyString(t *testing.T) {
	assert.Equal(t, "whole_track", StrategyWholeTrack.String())
	assert.Equal(t, "segment", StrategySegment.String())
	assert.Equal(t, "unknown", ChainStrategy(99).String())
}

func TestChainParamsBudget(t *testing.T) {
	t.Run("grows with the visited set by default", func(t *testing.T) {
		p := DefaultChainParams()
		assert.Equal(t, 11, p.Budget(1))
		assert.Equal(t, 17, p.Budget(7))
	})

	t.Run("fixed budget wins when set", func(t *testing.T) {
		p := DefaultChainParams()
		p.CandidateBudget = 50
		assert.Equal(t, 50, p.Budget(1))
		assert.Equal(t, 50, p.Budget(100))
	})
}

func TestDefaultSearchParams(t *testing.T) {
	p := DefaultSearchParams()
	assert.Equal(t, 10, p.NResults)
	assert.Equal(t, 5, p.SearchTopK)
	assert.InDelta(t, 0.1, p.DistanceMax, 1e-12)
	assert.True(t, p.ExcludeFlagged)
	assert.Zero(t, p.MaxSeconds)
}
