package segment

// MaskIoU computes the intersection-over-union of two binary masks, the
// same diagnostic the original CLI prints as "Diff label to result" / "Diff
// segm to result" (original_source/coraline/src/main.cpp's diff()).
// Returns 0 if both masks are entirely background (empty union).
func MaskIoU(a, b []uint8) float64 {
	var union, intersection int
	for i := range a {
		av := a[i] != 0
		bv := b[i] != 0
		if av || bv {
			union++
		}
		if av && bv {
			intersection++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
