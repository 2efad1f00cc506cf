package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/pion/depthframe"
)

func stats(depthBytes, colorBytes, points int) depthframe.Statistics {
	return depthframe.Statistics{
		Op:                   depthframe.OpEncode,
		PointCount:           points,
		BytesPerPoint:        15,
		CompressedDepthBytes: depthBytes,
		CompressedColorBytes: colorBytes,
	}
}

func TestRateTracker(t *testing.T) {
	frameSize := 1000
	now := time.Now()
	rt := NewRateTracker(time.Second)
	rt.Add(stats(800, 200, 100), now)
	rt.Add(stats(800, 200, 100), now.Add(time.Millisecond*100))
	rt.Add(stats(800, 200, 100), now.Add(time.Millisecond*999))
	eps := float64(frameSize*8) / 10
	if got, want := rt.Bitrate(), float64(frameSize*8)*3/0.999; math.Abs(got-want) > eps {
		t.Fatalf("Bitrate() = %v, want %v (|diff| <= %v)", got, want, eps)
	}
	if got, want := rt.PointRate(), 300/0.999; math.Abs(got-want) > 1e-6 {
		t.Fatalf("PointRate() = %v, want %v", got, want)
	}
}

func TestRateTrackerWindow(t *testing.T) {
	now := time.Now()
	rt := NewRateTracker(time.Second)
	rt.Add(stats(1000, 0, 10), now)
	if got := rt.Bitrate(); got != 0 {
		t.Fatalf("expected 0 with a single frame, got %v", got)
	}
	if got := rt.PointRate(); got != 0 {
		t.Fatalf("expected 0 with a single frame, got %v", got)
	}

	rt.Add(stats(1000, 0, 10), now.Add(2*time.Second))
	rt.Add(stats(400, 100, 10), now.Add(2500*time.Millisecond))
	// The first frame fell out of the window.
	if got, want := rt.Bitrate(), float64(1500*8)/0.5; math.Abs(got-want) > 1 {
		t.Fatalf("Bitrate() = %v, want %v", got, want)
	}
	if got, want := rt.PointRate(), 20/0.5; math.Abs(got-want) > 1e-9 {
		t.Fatalf("PointRate() = %v, want %v", got, want)
	}
}
