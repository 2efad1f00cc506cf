package metrics

import (
	"time"

	"github.com/pion/depthframe"
)

type rateSample struct {
	bytes  int
	points int
	at     time.Time
}

// RateTracker averages encoded output over a sliding window of frames.
// It is not safe for concurrent use.
type RateTracker struct {
	windowSize time.Duration
	samples    []rateSample
}

func NewRateTracker(windowSize time.Duration) *RateTracker {
	return &RateTracker{
		windowSize: windowSize,
	}
}

// Add records the compressed size and point count of a frame observed at
// timestamp.
func (rt *RateTracker) Add(s depthframe.Statistics, timestamp time.Time) {
	rt.samples = append(rt.samples, rateSample{
		bytes:  s.CompressedBytes(),
		points: s.PointCount,
		at:     timestamp,
	})

	cutoff := timestamp.Add(-rt.windowSize)
	i := 0
	for ; i < len(rt.samples); i++ {
		if rt.samples[i].at.After(cutoff) {
			break
		}
	}
	rt.samples = rt.samples[i:]
}

func (rt *RateTracker) span() float64 {
	if len(rt.samples) < 2 {
		return 0
	}
	return rt.samples[len(rt.samples)-1].at.Sub(rt.samples[0].at).Seconds()
}

// Bitrate returns compressed bits per second over the window, or 0 with
// fewer than two frames.
func (rt *RateTracker) Bitrate() float64 {
	d := rt.span()
	if d <= 0 {
		return 0
	}
	total := 0
	for _, s := range rt.samples {
		total += s.bytes
	}
	return float64(total*8) / d
}

// PointRate returns encoded points per second over the window.
func (rt *RateTracker) PointRate() float64 {
	d := rt.span()
	if d <= 0 {
		return 0
	}
	total := 0
	for _, s := range rt.samples {
		total += s.points
	}
	return float64(total) / d
}
