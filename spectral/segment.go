package spectral

// segmentPlan is the overlap bookkeeping shared by the Welch estimator
// and the spectrogram builder: a clamped segment length, the hop
// between consecutive segments, and every valid start offset.
type segmentPlan struct {
	length int
	step   int
	starts []int
}

// planSegments computes the ordered start offsets for segments of
// segLen samples over a signal of n samples with the given overlap
// fraction. segLen is clamped to n when the signal is shorter than one
// requested segment. A step that would round to zero is floored to 1
// so every possible offset is used.
func planSegments(n, segLen int, overlap float64) (segmentPlan, error) {
	if segLen <= 0 {
		return segmentPlan{}, errSegmentLength(segLen)
	}
	if overlap < 0 || overlap >= 1 {
		return segmentPlan{}, errOverlap(overlap)
	}

	if segLen > n {
		segLen = n
	}

	step := int(float64(segLen) * (1 - overlap))
	if step < 1 {
		step = 1
	}

	var starts []int
	for start := 0; start+segLen <= n; start += step {
		starts = append(starts, start)
	}

	return segmentPlan{
		length: segLen,
		step:   step,
		starts: starts,
	}, nil
}
