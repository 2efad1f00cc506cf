package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pion/depthframe"
)

func TestObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	o, err := NewObserver(reg, time.Second)
	require.NoError(t, err)

	start := time.Now()
	ticks := 0
	o.now = func() time.Time {
		ticks++
		return start.Add(time.Duration(ticks) * 500 * time.Millisecond)
	}

	enc := depthframe.Statistics{
		Op:                   depthframe.OpEncode,
		PointCount:           100,
		BytesPerPoint:        15,
		CompressedDepthBytes: 200,
		CompressedColorBytes: 50,
	}
	o.Observe(enc)
	o.Observe(enc)
	o.Observe(depthframe.Statistics{Op: depthframe.OpDecode, PointCount: 100, BytesPerPoint: 15, CompressedDepthBytes: 200})

	assert.Equal(t, 2.0, testutil.ToFloat64(o.frames.WithLabelValues("encode")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.frames.WithLabelValues("decode")))
	assert.Equal(t, 400.0, testutil.ToFloat64(o.bytes.WithLabelValues("encode", "depth")))
	assert.Equal(t, 100.0, testutil.ToFloat64(o.bytes.WithLabelValues("encode", "color")))
	assert.Equal(t, 0.0, testutil.ToFloat64(o.bytes.WithLabelValues("decode", "color")))

	// Two encodes of 250 bytes, 500ms apart.
	assert.InDelta(t, float64(500*8)/0.5, o.Bitrate(), 1e-6)
	assert.InDelta(t, 200/0.5, o.PointRate(), 1e-6)

	n, err := testutil.GatherAndCount(reg, "depthframe_compression_ratio")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = testutil.GatherAndCount(reg, "depthframe_encoded_points_per_second")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestObserverDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewObserver(reg, time.Second)
	require.NoError(t, err)

	_, err = NewObserver(reg, time.Second)
	assert.Error(t, err)
}
