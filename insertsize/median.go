package insertsize

import "sort"

// Median returns the median insert size of h, using the cumulative
// histogram convention of the Picard/HTSJDK Histogram class: the
// smallest size at which the running count reaches ceil(total/2).
// For an even total this is the upper median, not the mean of the two
// middle values. An empty histogram yields 0.
func Median(h Histogram) int {
	if len(h) == 0 {
		return 0
	}
	var total int64
	sizes := make([]int, 0, len(h))
	for size, count := range h {
		sizes = append(sizes, size)
		total += count
	}
	sort.Ints(sizes)

	threshold := (total + 1) / 2
	var running int64
	for _, size := range sizes {
		running += h[size]
		if running >= threshold {
			return size
		}
	}
	// Unreachable: threshold <= total, so the loop always hits it.
	return sizes[len(sizes)-1]
}
