// Package metrics exports depthframe statistics to Prometheus.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pion/depthframe"
)

// Observer is a depthframe.Observer that records frame counts, compressed
// payload bytes, compression ratios and the recent encoded bitrate and
// point rate.
type Observer struct {
	frames *prometheus.CounterVec
	bytes  *prometheus.CounterVec
	ratio  *prometheus.HistogramVec

	mu      sync.Mutex
	tracker *RateTracker
	now     func() time.Time
}

var _ depthframe.Observer = (*Observer)(nil)

// NewObserver creates an Observer and registers its collectors with reg. The
// bitrate gauge averages encoded output over window.
func NewObserver(reg prometheus.Registerer, window time.Duration) (*Observer, error) {
	o := &Observer{
		frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "depthframe_frames_total",
			Help: "Frames encoded or decoded",
		}, []string{"op"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "depthframe_compressed_bytes_total",
			Help: "Compressed payload bytes by plane",
		}, []string{"op", "plane"}),
		ratio: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "depthframe_compression_ratio",
			Help:    "Uncompressed over compressed size per frame",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		}, []string{"op"}),
		tracker: NewRateTracker(window),
		now:     time.Now,
	}

	bitrate := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "depthframe_encoded_bitrate_bits_per_second",
		Help: "Encoded output rate over the tracking window",
	}, o.Bitrate)
	pointRate := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "depthframe_encoded_points_per_second",
		Help: "Encoded points per second over the tracking window",
	}, o.PointRate)

	for _, c := range []prometheus.Collector{o.frames, o.bytes, o.ratio, bitrate, pointRate} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Observe implements depthframe.Observer.
func (o *Observer) Observe(s depthframe.Statistics) {
	op := string(s.Op)
	o.frames.WithLabelValues(op).Inc()
	o.bytes.WithLabelValues(op, "depth").Add(float64(s.CompressedDepthBytes))
	o.bytes.WithLabelValues(op, "color").Add(float64(s.CompressedColorBytes))
	o.ratio.WithLabelValues(op).Observe(s.CompressionRatio())

	if s.Op == depthframe.OpEncode {
		o.mu.Lock()
		o.tracker.Add(s, o.now())
		o.mu.Unlock()
	}
}

// Bitrate returns the encoded output rate in bits per second.
func (o *Observer) Bitrate() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.tracker.Bitrate()
}

// PointRate returns encoded points per second.
func (o *Observer) PointRate() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.tracker.PointRate()
}
