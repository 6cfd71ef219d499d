// Command coraline is the batch CLI entry point described in spec.md §6:
// it loads an image and a coarse segmentation mask, refines the mask, and
// writes an annotated output image. Modeled on the teacher's pkg/cli
// command-line conventions (os.Args parsing, os.Exit on failure) rather
// than its interactive REPL, since coraline is a one-shot batch tool.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/blang/semver"

	"github.com/coraline-go/coraline/pkg/cliutil"
	"github.com/coraline-go/coraline/pkg/ppm"
	"github.com/coraline-go/coraline/pkg/segment"
)

const (
	exitOK          = 0
	exitArgError    = 1
	exitFormatError = -1
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("coraline", flag.ContinueOnError)
	lambda := fs.Float64("l", -1, "color-model weight (defaults to spec value if unset)")
	conservative := fs.Float64("c", -1, "conservative pull-to-input strength (defaults to spec value if unset)")
	method := fs.String("method", "graphcut", "graphcut or geodesic")
	envFile := fs.String("env", ".env", "optional .env file to load before running")
	update := fs.Bool("update", false, "check for and install a newer release, then exit")
	fs.Usage = func() { fmt.Fprint(os.Stderr, cliutil.Usage(cliutil.RootCommand)) }
	if err := fs.Parse(args); err != nil {
		return exitArgError
	}
	if err := cliutil.LoadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "coraline: loading %s: %v\n", *envFile, err)
	}
	if *update {
		if err := cliutil.CheckForUpdates(func(v semver.Version) bool {
			return cliutil.ConfirmYN(fmt.Sprintf("A new version (%s) is available. Update now? (y/N): ", v))
		}); err != nil {
			fmt.Fprintf(os.Stderr, "coraline: %v\n", err)
			return exitArgError
		}
		return exitOK
	}

	rest := fs.Args()
	if len(rest) != 4 {
		fmt.Fprint(os.Stderr, cliutil.Usage(cliutil.RootCommand))
		return exitArgError
	}
	imagePath, segmPath, labelPath, outputPath := rest[0], rest[1], rest[2], rest[3]

	imgPPM, err := ppm.DecodeFile(imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "coraline: reading %s: %v\n", imagePath, err)
		return exitFormatError
	}
	segPPM, err := ppm.DecodeFile(segmPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "coraline: reading %s: %v\n", segmPath, err)
		return exitFormatError
	}
	if segPPM.W != imgPPM.W || segPPM.H != imgPPM.H {
		fmt.Fprintf(os.Stderr, "coraline: %s and %s have mismatched dimensions\n", imagePath, segmPath)
		return exitArgError
	}

	var labelMask []uint8
	if labelPPM, err := ppm.DecodeFile(labelPath); err == nil {
		labelMask = ppm.RGBToMask(labelPPM)
	} else {
		fmt.Fprintf(os.Stderr, "coraline: reading %s: %v (continuing without diff metrics)\n", labelPath, err)
	}

	cfg := segment.DefaultConfig()
	if *method == "geodesic" {
		cfg.Method = segment.Geodesic
	}
	if *lambda >= 0 {
		cfg.Lambda = *lambda
	}
	if *conservative >= 0 {
		cfg.Conservative = *conservative
	}

	mask := ppm.RGBToMask(segPPM)
	s := segment.New(cfg)

	start := time.Now()
	res, err := s.Segment(segment.Input{
		W:    imgPPM.W,
		H:    imgPPM.H,
		Img:  imgPPM.Pix,
		Mask: mask,
	})
	elapsed := time.Since(start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "coraline: segmentation failed: %v\n", err)
		return exitArgError
	}

	fmt.Printf("segmented %dx%d in %s (empty band: %v, flow: %.3f)\n", imgPPM.W, imgPPM.H, elapsed, res.EmptyBand, res.Flow)
	if labelMask != nil {
		fmt.Printf("diff label to result: %.4f\n", segment.MaskIoU(labelMask, res.Mask))
		fmt.Printf("diff segm to result: %.4f\n", segment.MaskIoU(mask, res.Mask))
	}

	out := &ppm.Image{W: imgPPM.W, H: imgPPM.H, Pix: make([]byte, len(imgPPM.Pix))}
	copy(out.Pix, imgPPM.Pix)
	ppm.DrawContour(out, res.Mask, color.RGBA{R: 255, G: 255, B: 255})
	ppm.DrawDiagnostics(out, fmt.Sprintf("flow=%.2f t=%s", res.Flow, elapsed.Round(time.Millisecond)), 4, out.H-6, color.RGBA{R: 255, G: 255, B: 0, A: 255})

	if err := ppm.EncodeFile(outputPath, out); err != nil {
		fmt.Fprintf(os.Stderr, "coraline: writing %s: %v\n", outputPath, err)
		return exitArgError
	}
	return exitOK
}
