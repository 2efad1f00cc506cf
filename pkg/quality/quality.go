// Package quality measures how far a decoded cloud drifts from the cloud it
// was encoded from.
package quality

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pion/depthframe/pkg/cloud"
)

// Report summarizes per-point depth error, in metres.
type Report struct {
	// Compared counts points that are finite in both clouds.
	Compared int
	// Lost counts points that were finite but decoded as invalid.
	Lost int
	// Spurious counts points that were invalid but decoded as finite.
	Spurious int

	MeanAbsError float64
	StdDev       float64
	MaxAbsError  float64
	RMSE         float64
}

func (r Report) String() string {
	return fmt.Sprintf("compared=%d lost=%d spurious=%d mean=%.6fm std=%.6fm max=%.6fm rmse=%.6fm",
		r.Compared, r.Lost, r.Spurious, r.MeanAbsError, r.StdDev, r.MaxAbsError, r.RMSE)
}

// CompareDepth compares the Z coordinate of corresponding points.
func CompareDepth(original, decoded *cloud.Cloud) (Report, error) {
	if original.Width != decoded.Width || original.Height != decoded.Height {
		return Report{}, fmt.Errorf("quality: grid %dx%d does not match %dx%d",
			decoded.Width, decoded.Height, original.Width, original.Height)
	}
	if err := original.Validate(); err != nil {
		return Report{}, err
	}
	if err := decoded.Validate(); err != nil {
		return Report{}, err
	}

	var r Report
	errs := make([]float64, 0, len(original.Points))
	for i, want := range original.Points {
		got := decoded.Points[i]
		switch {
		case want.IsFinite() && got.IsFinite():
			errs = append(errs, math.Abs(float64(got.Z)-float64(want.Z)))
		case want.IsFinite():
			r.Lost++
		case got.IsFinite():
			r.Spurious++
		}
	}

	r.Compared = len(errs)
	if r.Compared == 0 {
		return r, nil
	}
	r.MeanAbsError, r.StdDev = stat.MeanStdDev(errs, nil)
	if r.Compared == 1 {
		r.StdDev = 0
	}
	r.MaxAbsError = floats.Max(errs)
	r.RMSE = floats.Norm(errs, 2) / math.Sqrt(float64(r.Compared))
	return r, nil
}
