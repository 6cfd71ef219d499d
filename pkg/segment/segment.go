package segment

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/coraline-go/coraline/pkg/colormodel"
	"github.com/coraline-go/coraline/pkg/distfield"
	"github.com/coraline-go/coraline/pkg/geodesic"
	"github.com/coraline-go/coraline/pkg/graphcut"
	"github.com/coraline-go/coraline/pkg/grid"
)

// Input bundles everything a segmentation call reads, per spec.md §3's
// data model. Img is required; Depth, Pred and ClipPoints are optional.
type Input struct {
	W, H       int
	Img        []byte // W*H*3 RGB
	Mask       []uint8
	Depth      []byte           // optional, W*H
	Pred       []float64        // optional, W*H signed predictor
	ClipPoints []distfield.ClipPoint // optional, alternate distance-field seeds
}

// Result is what Segment returns.
type Result struct {
	Mask      []uint8
	EmptyBand bool
	Flow      float64 // only meaningful for GraphCut
}

// Segmenter runs one segmentation per the pipeline in spec.md §4.7:
// distance field -> color model (if lambda > 0) -> chosen solver.
// A Segmenter instance is not reentrant (spec.md §5): run at most one
// Segment call on it at a time.
type Segmenter struct {
	cfg Config
}

// New returns a Segmenter bound to cfg (normalized with defaults).
func New(cfg Config) *Segmenter {
	return &Segmenter{cfg: cfg.Normalize()}
}

// Segment runs the full pipeline and returns the refined mask. It never
// panics; CapacityOverflow-class failures from the flow solver surface as
// a returned error, matching spec.md §7's propagation policy.
func (s *Segmenter) Segment(in Input) (Result, error) {
	if err := s.validate(in); err != nil {
		return Result{}, err
	}
	cfg := s.cfg
	g := grid.New(in.W, in.H)

	var field distfield.Field
	if len(in.ClipPoints) > 0 {
		field = distfield.FromClipPoints(g, in.ClipPoints, cfg.Radius)
	} else {
		field = distfield.FromBoundary(g, in.Mask, cfg.Radius)
	}

	if len(field.Pixels) == 0 {
		// EmptyBand: not an error, return the input mask unchanged
		// (spec.md §4.3 "Edge cases" and §8 Scenario E).
		out := make([]uint8, len(in.Mask))
		copy(out, in.Mask)
		s.dumpDebug(g, field, nil, in)
		return Result{Mask: out, EmptyBand: true}, nil
	}

	var lk colormodel.Likelihoods
	haveColorModel := cfg.Lambda > 0
	if haveColorModel {
		model := colormodel.NewModel(cfg.Stride)
		model.Accumulate(in.Img, in.Mask, field.Distance, cfg.Radius)
		lk = model.Likelihoods(in.Img, in.W, in.H)
	}

	switch cfg.Method {
	case Geodesic:
		return s.runGeodesic(g, field, in, lk, haveColorModel)
	default:
		return s.runGraphCut(g, field, in, lk, haveColorModel)
	}
}

func (s *Segmenter) runGraphCut(g grid.Grid, field distfield.Field, in Input, lk colormodel.Likelihoods, haveColorModel bool) (Result, error) {
	cfg := s.cfg
	inputs := graphcut.Inputs{
		Img:   in.Img,
		Depth: in.Depth,
		Mask:  in.Mask,
		Pred:  in.Pred,
	}
	if haveColorModel {
		inputs.Fore = lk.Fore
		inputs.Back = lk.Back
	}
	params := graphcut.Params{
		Radius:       cfg.Radius,
		Lambda:       cfg.Lambda,
		Grow:         cfg.Grow,
		Conservative: cfg.Conservative,
		ImgWeight:    cfg.ImgWeight,
		DepthWeight:  cfg.DepthWeight,
		Epsilon:      cfg.Epsilon,
	}
	res, err := graphcut.Run(g, field, inputs, params)
	if err != nil {
		return Result{}, fmt.Errorf("segment: graph-cut solve failed: %w", err)
	}
	s.dumpDebug(g, field, lk.Fore, in)
	return Result{Mask: res.Mask, Flow: res.Flow}, nil
}

func (s *Segmenter) runGeodesic(g grid.Grid, field distfield.Field, in Input, lk colormodel.Likelihoods, haveColorModel bool) (Result, error) {
	cfg := s.cfg
	tagged := geodesic.Retag(in.Mask, field.Distance, cfg.Radius)
	probs := make([]float64, in.W*in.H)
	if haveColorModel {
		// spec.md §9: the original passes color[] (color-model derived)
		// as probs but leaves it at its default zero initialization in
		// practice; this implementation wires the real likelihood
		// difference through, which is a strict superset of "leave at
		// zero" (lambda == 0 recovers that exact degenerate behavior).
		for i := range probs {
			probs[i] = cfg.Lambda * (lk.Fore[i] - lk.Back[i])
		}
	}
	fields := geodesic.Run(g, tagged, probs)
	labeled := geodesic.Label(tagged, fields)
	out := geodesic.Untag(labeled)
	log.Printf("segment: geodesic solve complete, %d band pixels", len(field.Pixels))
	return Result{Mask: out}, nil
}

func (s *Segmenter) validate(in Input) error {
	if in.W <= 2 || in.H <= 2 {
		return ErrInvalidGeometry
	}
	if len(in.Img) != in.W*in.H*3 {
		return fmt.Errorf("%w: image size %d does not match %dx%d*3", ErrInvalidGeometry, len(in.Img), in.W, in.H)
	}
	if len(in.Mask) != in.W*in.H {
		return fmt.Errorf("%w: mask size %d does not match %dx%d", ErrInvalidGeometry, len(in.Mask), in.W, in.H)
	}
	if in.Depth != nil && len(in.Depth) != in.W*in.H {
		return fmt.Errorf("%w: depth size %d does not match %dx%d", ErrInvalidGeometry, len(in.Depth), in.W, in.H)
	}
	if in.Pred != nil && len(in.Pred) != in.W*in.H {
		return fmt.Errorf("%w: predictor size %d does not match %dx%d", ErrInvalidGeometry, len(in.Pred), in.W, in.H)
	}
	for _, p := range in.ClipPoints {
		if p.X < 0 || p.X >= in.W || p.Y < 0 || p.Y >= in.H {
			return fmt.Errorf("%w: clip point (%d,%d) outside %dx%d", ErrInvalidGeometry, p.X, p.Y, in.W, in.H)
		}
	}
	return nil
}

// dumpDebug writes diagnostic rasters when Config.DebugDir is set, per
// SPEC_FULL.md §3's supplement of the original's commented-out savePPM
// calls in coraline.cpp. It is best-effort: failures are logged, never
// returned, since debug output is never on the critical path.
func (s *Segmenter) dumpDebug(g grid.Grid, field distfield.Field, fore []float64, in Input) {
	dir := s.cfg.DebugDir
	if dir == "" {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("segment: debug dir %s: %v", dir, err)
		return
	}
	writeGray := func(name string, values []float64, scale float64) {
		buf := make([]byte, g.W*g.H)
		for i, v := range values {
			if v > 1e19 {
				v = 0
			}
			px := v * scale
			if px < 0 {
				px = 0
			}
			if px > 255 {
				px = 255
			}
			buf[i] = byte(px)
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, buf, 0o644); err != nil {
			log.Printf("segment: writing %s: %v", path, err)
		}
	}
	writeGray("distance.raw", field.Distance, 255.0/s.cfg.Radius)
	if fore != nil {
		writeGray("foreprob.raw", fore, 1.0)
	}
}
