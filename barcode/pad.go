package barcode

// Pad rewrites every record's sequence into a new buffer of length H, the
// maximum unpadded length across the bag, left-padded with the Pad byte. It
// returns H and M, the median unpadded length (the smallest length L such
// that the cumulative count of records with length <= L is at least half
// the total count), mirroring starcode.c's pad_useq().
func (b *Bag) Pad() (height, median int) {
	if len(b.Records) == 0 {
		return 0, 0
	}

	maxLen := 0
	for _, r := range b.Records {
		if len(r.Seq) > maxLen {
			maxLen = len(r.Seq)
		}
	}

	countByLen := make([]int, maxLen+1)
	for _, r := range b.Records {
		countByLen[len(r.Seq)]++
	}

	for _, r := range b.Records {
		l := len(r.Seq)
		if l == maxLen {
			continue
		}
		padded := make([]byte, maxLen)
		for i := 0; i < maxLen-l; i++ {
			padded[i] = Pad
		}
		copy(padded[maxLen-l:], r.Seq)
		r.Seq = padded
	}

	// Median is over the number of unique records, not occurrence counts,
	// matching starcode.c's pad_useq (its per-length tally increments by
	// one record, not by the record's count field).
	nitems := len(b.Records)
	cum, m := 0, 0
	for {
		m++
		if m > maxLen {
			break
		}
		cum += countByLen[m]
		if cum >= nitems/2 {
			break
		}
	}

	return maxLen, m
}

// UnpadAll strips left padding from every record's sequence, restoring the
// original (pre-Pad) byte-for-byte contents, mirroring starcode.c's
// unpad_useq(). It assumes every record shares the same padded length.
func (b *Bag) UnpadAll() {
	for _, r := range b.Records {
		r.Seq = Unpad(r.Seq)
	}
}
