// Package colormodel builds quantized 3D RGB histograms of confident
// foreground/background pixels and turns them into per-pixel
// foreground/background likelihoods. See spec.md §4.4.
//
// The model deliberately does not compute a soft normalized posterior: per
// spec.md §9, the original only ever saturates to 100/0 when one side's
// histogram bin is under-populated, and that conservative behavior is
// preserved here rather than "upgraded" to a Bayesian posterior.
package colormodel

// Threshold is the minimum histogram bin count (T in spec.md §4.4) below
// which a side is considered to have insufficient evidence.
const Threshold = 50.0

// DefaultStride is the default color quantization stride q.
const DefaultStride = 16

// Model holds the accumulated histograms and the quantization stride used
// to build them.
type Model struct {
	Stride   int
	Depth    int // 256 / Stride
	ForeHist []float64
	BackHist []float64
}

// NewModel allocates an empty Q^3-bin model for the given quantization
// stride (q in spec.md §3; default 16 -> 16^3 = 4096 bins).
func NewModel(stride int) *Model {
	if stride <= 0 {
		stride = DefaultStride
	}
	depth := 256 / stride
	return &Model{
		Stride:   stride,
		Depth:    depth,
		ForeHist: make([]float64, depth*depth*depth),
		BackHist: make([]float64, depth*depth*depth),
	}
}

func (m *Model) bin(r, g, b uint8) int {
	d := m.Depth
	return int(r)/m.Stride + (int(g)/m.Stride)*d + (int(b)/m.Stride)*d*d
}

// Accumulate increments the foreground or background histogram for every
// pixel whose distance is in the confident region (distance[i] >= radius),
// per spec.md invariant (c). img is packed RGB (3 bytes/pixel), mask[i] ==
// 1 selects the foreground histogram, anything else the background one.
func (m *Model) Accumulate(img []byte, mask []uint8, distance []float64, radius float64) {
	n := len(mask)
	for i := 0; i < n; i++ {
		if distance[i] < radius {
			continue
		}
		r := img[i*3+0]
		g := img[i*3+1]
		b := img[i*3+2]
		k := m.bin(r, g, b)
		if mask[i] == 1 {
			m.ForeHist[k]++
		} else {
			m.BackHist[k]++
		}
	}
}

// Likelihoods holds the per-pixel foreground/background likelihood fields,
// defaulting to 0.5/0.5 (insufficient evidence).
type Likelihoods struct {
	Fore []float64
	Back []float64
}

// Likelihoods computes per-pixel likelihoods for every pixel in img,
// applying the saturating rule of spec.md §4.4: if both histogram bins at
// a pixel's quantized color are below Threshold, the pixel keeps the
// default 0.5/0.5; if exactly one side is below Threshold, the other
// side saturates to 100.0 and the starved side drops to 0.0; if both sides
// clear the threshold, the pixel also keeps 0.5/0.5 (the known
// conservative choice — no normalized posterior is computed).
func (m *Model) Likelihoods(img []byte, w, h int) Likelihoods {
	n := w * h
	out := Likelihoods{
		Fore: make([]float64, n),
		Back: make([]float64, n),
	}
	for i := range out.Fore {
		out.Fore[i] = 0.5
		out.Back[i] = 0.5
	}
	for i := 0; i < n; i++ {
		r := img[i*3+0]
		g := img[i*3+1]
		b := img[i*3+2]
		k := m.bin(r, g, b)
		fore := m.ForeHist[k]
		back := m.BackHist[k]
		if back < Threshold && fore < Threshold {
			continue
		}
		if back < Threshold {
			out.Fore[i] = 100.0
			out.Back[i] = 0.0
		} else if fore < Threshold {
			out.Fore[i] = 0.0
			out.Back[i] = 100.0
		}
	}
	return out
}
