package depthframe

import (
	"github.com/pion/logging"
)

// Op names the direction a Statistics value was collected for.
type Op string

// Op values.
const (
	OpEncode Op = "encode"
	OpDecode Op = "decode"
)

// Statistics describes one encoded or decoded frame. It is diagnostic only
// and never influences codec results.
type Statistics struct {
	Op         Op
	PointCount int
	// BytesPerPoint is the uncompressed size of one point of the input.
	BytesPerPoint        int
	CompressedDepthBytes int
	CompressedColorBytes int
}

// UncompressedBytes is the size of the input without compression.
func (s Statistics) UncompressedBytes() int {
	return s.PointCount * s.BytesPerPoint
}

// CompressedBytes is the size of both payloads.
func (s Statistics) CompressedBytes() int {
	return s.CompressedDepthBytes + s.CompressedColorBytes
}

// CompressedBytesPerPoint is the average compressed size of one point.
func (s Statistics) CompressedBytesPerPoint() float64 {
	if s.PointCount == 0 {
		return 0
	}
	return float64(s.CompressedBytes()) / float64(s.PointCount)
}

// CompressionPercentage is the compressed size relative to the uncompressed
// size, in percent.
func (s Statistics) CompressionPercentage() float64 {
	if s.BytesPerPoint == 0 {
		return 0
	}
	return s.CompressedBytesPerPoint() / float64(s.BytesPerPoint) * 100
}

// CompressionRatio is uncompressed size over compressed size.
func (s Statistics) CompressionRatio() float64 {
	if s.CompressedBytes() == 0 {
		return 0
	}
	return float64(s.UncompressedBytes()) / float64(s.CompressedBytes())
}

// Observer receives statistics after each successful encode or decode.
// Implementations must be safe for concurrent use.
type Observer interface {
	Observe(s Statistics)
}

// ObserverFunc is a proxy type for Observer
type ObserverFunc func(s Statistics)

func (f ObserverFunc) Observe(s Statistics) {
	f(s)
}

type multiObserver []Observer

func (m multiObserver) Observe(s Statistics) {
	for _, o := range m {
		o.Observe(s)
	}
}

type logObserver struct {
	log logging.LeveledLogger
}

// NewLogObserver returns an Observer that prints a compression report at
// info level.
func NewLogObserver(log logging.LeveledLogger) Observer {
	return &logObserver{log: log}
}

func (o *logObserver) Observe(s Statistics) {
	if s.Op == OpDecode {
		o.log.Info("*** POINTCLOUD DECODING ***")
	} else {
		o.log.Info("*** POINTCLOUD ENCODING ***")
	}
	o.log.Infof("Number of encoded points: %d", s.PointCount)
	o.log.Infof("Size of uncompressed point cloud: %.2f kBytes", float64(s.UncompressedBytes())/1024)
	o.log.Infof("Size of compressed point cloud: %.2f kBytes", float64(s.CompressedBytes())/1024)
	o.log.Infof("Total bytes per point: %.4f bytes", s.CompressedBytesPerPoint())
	o.log.Infof("Total compression percentage: %.4f%%", s.CompressionPercentage())
	o.log.Infof("Compression ratio: %.2f", s.CompressionRatio())
}
