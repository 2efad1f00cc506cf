package depthframe

import (
	"fmt"
	"math"

	"github.com/pion/logging"

	ilogging "github.com/pion/depthframe/internal/logging"
	"github.com/pion/depthframe/pkg/codec"
	_ "github.com/pion/depthframe/pkg/codec/png" // default codec
	"github.com/pion/depthframe/pkg/frame"
)

// DefaultFallbackFocalLength is the focal length of a 640x480 Kinect style
// depth camera, used when a cloud does not yield a usable estimate.
const DefaultFallbackFocalLength = 525

// Params stores the compressor configuration.
type Params struct {
	// DepthCodec names the registered codec for the depth plane.
	DepthCodec string
	// DepthLevel is the compression level for the depth plane, 0-9.
	DepthLevel int
	// ColorCodec names the registered codec for the color image.
	ColorCodec string
	// ColorLevel is the compression level for the color image, 0-9. It is
	// independent of DepthLevel and defaults to the fastest setting.
	ColorLevel int
	// ColorEncoding enables the color payload when the input carries color.
	ColorEncoding bool
	// MonoColor stores color as 8-bit luma. Codecs without a gray format
	// store the luma in all three components.
	MonoColor bool

	// FallbackFocalLength replaces a focal length estimate that is not
	// finite and positive when encoding a cloud.
	FallbackFocalLength float32

	// Limits bound the sizes a decoder accepts from a frame header.
	Limits frame.Limits

	// ShowStatistics logs a compression report for every frame.
	ShowStatistics bool
	// Observer, if set, receives statistics for every frame.
	Observer Observer

	// LoggerFactory overrides the default pion logger factory.
	LoggerFactory logging.LoggerFactory
}

// NewParams returns default parameters: PNG for both planes, depth at level 6
// and color at level 1.
func NewParams() (Params, error) {
	return Params{
		DepthCodec:          "png",
		DepthLevel:          codec.LevelDefault,
		ColorCodec:          "png",
		ColorLevel:          codec.LevelFastest,
		ColorEncoding:       true,
		FallbackFocalLength: DefaultFallbackFocalLength,
		Limits:              frame.DefaultLimits,
	}, nil
}

// BuildCompressor validates p and resolves its codecs. The returned
// Compressor keeps a copy of p.
func (p *Params) BuildCompressor() (*Compressor, error) {
	if !codec.ValidLevel(p.DepthLevel) {
		return nil, fmt.Errorf("%w: depth level %d", ErrInvalidParams, p.DepthLevel)
	}
	if !codec.ValidLevel(p.ColorLevel) {
		return nil, fmt.Errorf("%w: color level %d", ErrInvalidParams, p.ColorLevel)
	}
	fl := float64(p.FallbackFocalLength)
	if fl <= 0 || math.IsInf(fl, 0) || math.IsNaN(fl) {
		return nil, fmt.Errorf("%w: fallback focal length %v", ErrInvalidParams, p.FallbackFocalLength)
	}

	depthEnc, err := codec.Lookup(p.DepthCodec)
	if err != nil {
		return nil, err
	}
	colorEnc, err := codec.Lookup(p.ColorCodec)
	if err != nil {
		return nil, err
	}

	log := ilogging.NewLoggerFrom(p.LoggerFactory, "depthframe")
	log.Debugf("depth codec %s level %d, color codec %s level %d", p.DepthCodec, p.DepthLevel, p.ColorCodec, p.ColorLevel)

	var observers []Observer
	if p.ShowStatistics {
		observers = append(observers, NewLogObserver(log))
	}
	if p.Observer != nil {
		observers = append(observers, p.Observer)
	}

	return &Compressor{
		params:   *p,
		depthEnc: depthEnc,
		colorEnc: colorEnc,
		log:      log,
		observer: multiObserver(observers),
	}, nil
}
