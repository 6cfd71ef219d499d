// Command coralinec builds a C-callable shared object exposing
// Coraline_segment, the scripting-binding ABI entry point from spec.md §6.
// It wraps the same pkg/segment orchestrator the batch CLI uses; the only
// job here is marshalling C buffers into Go slices and reporting structured
// diagnostics through zerolog instead of plain stdout, since this binary has
// no terminal of its own to print to.
package main

/*
#include <stdint.h>
#include <stdbool.h>
*/
import "C"

import (
	"os"
	"time"
	"unsafe"

	"github.com/rs/zerolog"

	"github.com/coraline-go/coraline/pkg/distfield"
	"github.com/coraline-go/coraline/pkg/segment"
)

var logger = zerolog.New(os.Stderr).With().Timestamp().Str("component", "coralinec").Logger()

// Coraline_segment implements the C ABI entry point from spec.md §6.
// mask is read on entry (the coarse input labels) and overwritten in place
// with the refined labels. Returns true on success, false on any failure
// per §7's "single boolean success/failure on the C ABI path" policy.
//
//export Coraline_segment
func Coraline_segment(
	img *C.uint8_t,
	depth *C.uint8_t,
	mask *C.uint8_t,
	w, h C.int32_t,
	clippoints *C.int32_t,
	nclips C.int32_t,
	lambda, conservative, grow, radius, depthWeight C.float,
) C.bool {
	start := time.Now()
	width, height := int(w), int(h)
	if width <= 2 || height <= 2 || img == nil || mask == nil {
		logger.Error().Int("w", width).Int("h", height).Msg("invalid geometry or null buffer")
		return C.bool(false)
	}

	imgSlice := unsafe.Slice((*byte)(unsafe.Pointer(img)), width*height*3)
	maskSlice := unsafe.Slice((*byte)(unsafe.Pointer(mask)), width*height)

	maskCopy := make([]uint8, width*height)
	copy(maskCopy, maskSlice)

	var depthSlice []byte
	if depth != nil {
		depthSlice = unsafe.Slice((*byte)(unsafe.Pointer(depth)), width*height)
	}

	var clips []distfield.ClipPoint
	if clippoints != nil && nclips > 0 {
		raw := unsafe.Slice((*int32)(unsafe.Pointer(clippoints)), int(nclips)*2)
		clips = make([]distfield.ClipPoint, 0, nclips)
		for i := 0; i < int(nclips); i++ {
			clips = append(clips, distfield.ClipPoint{X: int(raw[i*2]), Y: int(raw[i*2+1])})
		}
	}

	cfg := segment.DefaultConfig()
	cfg.Lambda = float64(lambda)
	cfg.Conservative = float64(conservative)
	cfg.Grow = float64(grow)
	if radius > 0 {
		cfg.Radius = float64(radius)
	}
	cfg.DepthWeight = float64(depthWeight)
	cfg.ImgWeight = 1 - float64(depthWeight)

	s := segment.New(cfg)
	res, err := s.Segment(segment.Input{
		W:          width,
		H:          height,
		Img:        imgSlice,
		Mask:       maskCopy,
		Depth:      depthSlice,
		ClipPoints: clips,
	})
	if err != nil {
		logger.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("segmentation failed")
		return C.bool(false)
	}

	copy(maskSlice, res.Mask)
	logger.Info().
		Dur("elapsed", time.Since(start)).
		Bool("empty_band", res.EmptyBand).
		Float64("flow", res.Flow).
		Int("w", width).Int("h", height).
		Msg("segmentation complete")
	return C.bool(true)
}

func main() {}
