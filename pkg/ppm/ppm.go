// Package ppm implements the ancillary PPM reader/writer and mask helpers
// named in spec.md §6: raw binary (P6) RGB in row-major, 8-bit per
// channel, three interleaved channels, plus rgbToMask and contour
// rendering for the CLI entry point.
package ppm

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Image is a decoded PPM raster: packed RGB, row-major, 8-bit/channel.
type Image struct {
	W, H int
	Pix  []byte // len W*H*3
}

// Decode reads a binary PPM (P6) from r. It accepts '#' comment lines
// between the header tokens, matching the tolerant whitespace/comment
// handling the original loadSimplePPM performs with fgets.
func Decode(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)
	magic, err := readToken(br)
	if err != nil {
		return nil, fmt.Errorf("ppm: reading magic: %w", err)
	}
	if magic != "P6" {
		return nil, fmt.Errorf("ppm: unsupported format %q, only P6 is accepted", magic)
	}
	w, err := readIntToken(br)
	if err != nil {
		return nil, fmt.Errorf("ppm: reading width: %w", err)
	}
	h, err := readIntToken(br)
	if err != nil {
		return nil, fmt.Errorf("ppm: reading height: %w", err)
	}
	maxval, err := readIntToken(br)
	if err != nil {
		return nil, fmt.Errorf("ppm: reading maxval: %w", err)
	}
	if maxval != 255 {
		return nil, fmt.Errorf("ppm: unsupported maxval %d, only 255 is accepted", maxval)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("ppm: invalid dimensions %dx%d", w, h)
	}
	pix := make([]byte, w*h*3)
	if _, err := io.ReadFull(br, pix); err != nil {
		return nil, fmt.Errorf("ppm: reading pixel data: %w", err)
	}
	return &Image{W: w, H: h, Pix: pix}, nil
}

// DecodeFile opens and decodes path.
func DecodeFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Encode writes img as a binary PPM (P6) to w.
func Encode(w io.Writer, img *Image) error {
	if _, err := fmt.Fprintf(w, "P6\n%d %d\n255\n", img.W, img.H); err != nil {
		return err
	}
	_, err := w.Write(img.Pix)
	return err
}

// EncodeFile writes img as a binary PPM (P6) to path.
func EncodeFile(path string, img *Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Encode(f, img)
}

func readToken(br *bufio.Reader) (string, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return "", err
		}
		if isSpace(b) {
			continue
		}
		if b == '#' {
			if _, err := br.ReadString('\n'); err != nil {
				return "", err
			}
			continue
		}
		var tok []byte
		tok = append(tok, b)
		for {
			b, err := br.ReadByte()
			if err != nil {
				return string(tok), nil
			}
			if isSpace(b) {
				break
			}
			tok = append(tok, b)
		}
		return string(tok), nil
	}
}

func readIntToken(br *bufio.Reader) (int, error) {
	tok, err := readToken(br)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(tok)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// RGBToMask maps an RGB-colored annotation image to {0,1} labels by exact
// color match, per spec.md §6: black -> 0, white -> 1, the specific
// orange (213, 165, 0) -> 1, everything else -> 0.
func RGBToMask(img *Image) []uint8 {
	mask := make([]uint8, img.W*img.H)
	for i := 0; i < img.W*img.H; i++ {
		r := img.Pix[i*3+0]
		g := img.Pix[i*3+1]
		b := img.Pix[i*3+2]
		switch {
		case r == 0 && g == 0 && b == 0:
			mask[i] = 0
		case (r == 255 && g == 255 && b == 255) || (r == 213 && g == 165 && b == 0):
			mask[i] = 1
		default:
			mask[i] = 0
		}
	}
	return mask
}

// ToNRGBA converts a decoded PPM to *image.NRGBA for use by callers that
// want the standard library image interfaces (e.g. the font-drawing helper
// DrawDiagnostics).
func ToNRGBA(img *Image) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.W, img.H))
	for i := 0; i < img.W*img.H; i++ {
		out.Pix[i*4+0] = img.Pix[i*3+0]
		out.Pix[i*4+1] = img.Pix[i*3+1]
		out.Pix[i*4+2] = img.Pix[i*3+2]
		out.Pix[i*4+3] = 255
	}
	return out
}

// FromNRGBA converts an *image.NRGBA back to a packed PPM Image, dropping
// the alpha channel.
func FromNRGBA(src *image.NRGBA) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := &Image{W: w, H: h, Pix: make([]byte, w*h*3)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := src.PixOffset(x+b.Min.X, y+b.Min.Y)
			i := (y*w + x) * 3
			out.Pix[i+0] = src.Pix[off+0]
			out.Pix[i+1] = src.Pix[off+1]
			out.Pix[i+2] = src.Pix[off+2]
		}
	}
	return out
}

// DrawContour tints pixels along the mask boundary into img, darkening the
// existing color and blending in the given color at half strength -- the
// same half-and-half blend original_source/coraline/src/main.cpp's
// drawBorder uses, generalized to an arbitrary overlay color instead of a
// single packed 0xRRGGBB literal.
func DrawContour(img *Image, mask []uint8, c color.RGBA) {
	w, h := img.W, img.H
	half := color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2}
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := x + y*w
			if mask[i] != 1 {
				continue
			}
			if !hasBackgroundNeighbor(mask, i, w) {
				continue
			}
			off := i * 3
			img.Pix[off+0] = img.Pix[off+0]/2 + half.R
			img.Pix[off+1] = img.Pix[off+1]/2 + half.G
			img.Pix[off+2] = img.Pix[off+2]/2 + half.B
		}
	}
}

// DrawDiagnostics burns a line of text onto img at (x, y) using the
// built-in basicfont face, the same fallback path stdimg.Annotate takes
// when no TrueType font is configured. Used by cmd/coraline to stamp the
// flow value and elapsed time directly onto the written-out PPM.
func DrawDiagnostics(img *Image, text string, x, y int, col color.Color) {
	nrgba := ToNRGBA(img)
	d := &font.Drawer{
		Dst:  nrgba,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
	copy(img.Pix, FromNRGBA(nrgba).Pix)
}

func hasBackgroundNeighbor(mask []uint8, i, w int) bool {
	offs := [8]int{-w - 1, -w, -w + 1, -1, 1, w - 1, w, w + 1}
	for _, o := range offs {
		if mask[i+o] == 0 {
			return true
		}
	}
	return false
}
