package similarity

// Observer receives cache notifications from the pipeline.
//
// Implementations must be cheap and non-blocking; calls happen on the
// request path.
type Observer interface {
	// OnCacheHit is called when a ranking was served from the score cache.
	OnCacheHit(collection, trackID string)

	// OnCacheMiss is called when a ranking had to be computed. Unreadable
	// cache rows count as misses.
	OnCacheMiss(collection, trackID string)
}

// NoopObserver ignores all notifications.
type NoopObserver struct{}

// OnCacheHit implements Observer.
func (NoopObserver) OnCacheHit(collection, trackID string) {}

// OnCacheMiss implements Observer.
func (NoopObserver) OnCacheMiss(collection, trackID string) {}
