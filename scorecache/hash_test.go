package scorecache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/songchain/model"
)

func TestHashParams(t *testing.T) {
	base := model.DefaultSearchParams()

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, HashParams(base, 1), HashParams(base, 1))
		assert.Len(t, HashParams(base, 1), 64)
	})

	t.Run("sensitive to every field", func(t *testing.T) {
		mutations := []func(*model.SearchParams){
			func(p *model.SearchParams) { p.NResults++ },
			func(p *model.SearchParams) { p.SearchTopK++ },
			func(p *model.SearchParams) { p.DistanceMax += 0.01 },
			func(p *model.SearchParams) { p.MaxSeconds = 60 },
			func(p *model.SearchParams) { p.SkipSeconds = 5 },
			func(p *model.SearchParams) { p.SkipEndSeconds = 5 },
			func(p *model.SearchParams) { p.ExcludeFlagged = !p.ExcludeFlagged },
		}

		for _, mutate := range mutations {
			p := base
			mutate(&p)
			assert.NotEqual(t, HashParams(base, 1), HashParams(p, 1))
		}
	})

	t.Run("sensitive to schema version", func(t *testing.T) {
		assert.NotEqual(t, HashParams(base, 1), HashParams(base, 2))
	})
}
