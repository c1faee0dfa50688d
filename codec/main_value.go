package codec

// mainValue returns the most frequent value of flat. Ties go to the smallest
// value so the choice does not depend on map iteration order.
func mainValue(flat []uint32) uint32 {
	counts := make(map[uint32]int)
	for _, v := range flat {
		counts[v]++
	}

	var top uint32
	best := 0
	for v, c := range counts {
		if c > best || (c == best && v < top) {
			top = v
			best = c
		}
	}

	return top
}
