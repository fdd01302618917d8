package fitness

// PercentileRank returns the share of sample values that are less than or
// equal to probe, scaled to 0..100. The boolean is false when the sample
// is empty, a percentile against nobody means nothing.
func PercentileRank(sample []float64, probe float64) (float64, bool) {
	if len(sample) == 0 {
		return 0, false
	}
	var count int
	for _, v := range sample {
		if v <= probe {
			count++
		}
	}
	return 100.0 * float64(count) / float64(len(sample)), true
}
