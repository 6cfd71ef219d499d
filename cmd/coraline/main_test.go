package main

import (
	"path/filepath"
	"testing"

	"github.com/coraline-go/coraline/pkg/ppm"
)

func TestRunRejectsWrongArgCount(t *testing.T) {
	if code := run([]string{"one", "two"}); code != exitArgError {
		t.Fatalf("expected exitArgError, got %d", code)
	}
}

func TestRunRejectsMissingFile(t *testing.T) {
	dir := t.TempDir()
	code := run([]string{filepath.Join(dir, "missing.ppm"), filepath.Join(dir, "missing.ppm"), filepath.Join(dir, "missing.ppm"), filepath.Join(dir, "out.ppm")})
	if code != exitFormatError {
		t.Fatalf("expected exitFormatError, got %d", code)
	}
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	w, h := 12, 12
	img := &ppm.Image{W: w, H: h, Pix: make([]byte, w*h*3)}
	for i := 0; i < w*h; i++ {
		v := byte(40)
		if i%w >= w/2 {
			v = 220
		}
		img.Pix[i*3], img.Pix[i*3+1], img.Pix[i*3+2] = v, v, v
	}
	segMask := &ppm.Image{W: w, H: h, Pix: make([]byte, w*h*3)}
	for i := 0; i < w*h; i++ {
		if i%w >= w/2 {
			segMask.Pix[i*3], segMask.Pix[i*3+1], segMask.Pix[i*3+2] = 255, 255, 255
		}
	}
	imagePath := filepath.Join(dir, "image.ppm")
	segPath := filepath.Join(dir, "segm.ppm")
	labelPath := filepath.Join(dir, "label.ppm")
	outPath := filepath.Join(dir, "out.ppm")
	if err := ppm.EncodeFile(imagePath, img); err != nil {
		t.Fatalf("encode image: %v", err)
	}
	if err := ppm.EncodeFile(segPath, segMask); err != nil {
		t.Fatalf("encode segm: %v", err)
	}
	if err := ppm.EncodeFile(labelPath, segMask); err != nil {
		t.Fatalf("encode label: %v", err)
	}

	code := run([]string{"-env", filepath.Join(dir, "nonexistent.env"), imagePath, segPath, labelPath, outPath})
	if code != exitOK {
		t.Fatalf("expected exitOK, got %d", code)
	}
	out, err := ppm.DecodeFile(outPath)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if out.W != w || out.H != h {
		t.Fatalf("expected output %dx%d, got %dx%d", w, h, out.W, out.H)
	}
}
