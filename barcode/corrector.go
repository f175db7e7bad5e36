package barcode

import (
	"fmt"

	"github.com/grailbio/seqcluster/util"
)

// Corrector snaps noisy barcodes onto a fixed whitelist of expected
// barcodes, adapted from the teacher's umi.SnapCorrector (a UMI-specific
// special case) to arbitrary-length DNA barcodes, reusing util.Levenshtein
// for the distance itself (passed empty downstream-context strings, which
// collapses it to a plain equal-length edit distance). A barcode snaps to
// a whitelist entry when exactly one whitelist entry minimizes the
// Levenshtein distance to it; ties are reported as uncorrectable, matching
// umi.SnapCorrector's behavior.
//
// Corrector is a supplementary, optional pipeline stage: SPEC_FULL.md §4.5.
// When no whitelist is configured the clustering engine never constructs
// one, and the rest of the pipeline is unaffected.
type Corrector struct {
	whitelist []string
	k         int
}

// NewCorrector builds a Corrector from a whitelist of equal-length,
// upper-case ACGT barcodes. It returns an error instead of panicking (unlike
// umi.SnapCorrector) since the whitelist usually comes from a user-supplied
// file.
func NewCorrector(whitelist []string) (*Corrector, error) {
	if len(whitelist) == 0 {
		return nil, fmt.Errorf("barcode: empty whitelist")
	}
	k := len(whitelist[0])
	for _, w := range whitelist {
		if len(w) != k {
			return nil, fmt.Errorf("barcode: whitelist entry %q has length %d, want %d", w, len(w), k)
		}
		if err := validateDNA(w); err != nil {
			return nil, err
		}
	}
	return &Corrector{whitelist: whitelist, k: k}, nil
}

func validateDNA(s string) error {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'A', 'C', 'G', 'T':
		default:
			return fmt.Errorf("barcode: invalid base %q in %q", s[i], s)
		}
	}
	return nil
}

// Correct returns the whitelist entry closest to seq, the edit distance to
// it, and whether seq was corrected: ok is true only when the closest entry
// is unambiguous and differs from seq, so an exact whitelist match returns
// seq, 0, false. If seq is not the same length as
// the whitelist, or no whitelist entry is closest without a tie, it returns
// seq itself, -1, false.
func (c *Corrector) Correct(seq string) (corrected string, dist int, ok bool) {
	if len(seq) != c.k {
		return seq, -1, false
	}
	best := -1
	bestDist := c.k + 1
	tie := false
	for i, w := range c.whitelist {
		d := util.Levenshtein(seq, w, "", "")
		switch {
		case d < bestDist:
			bestDist = d
			best = i
			tie = false
		case d == bestDist:
			tie = true
		}
	}
	if tie || best < 0 {
		return seq, -1, false
	}
	return c.whitelist[best], bestDist, seq != c.whitelist[best]
}

// ApplyToBag runs Correct over every record's sequence and merges counts of
// records that snap to the same whitelist entry. Unlike SortAndMerge, this
// does not require the bag to be sorted first; it builds its own index.
func (c *Corrector) ApplyToBag(b *Bag) {
	merged := make(map[string]*Record, len(b.Records))
	var order []string
	for _, r := range b.Records {
		snapped, _, _ := c.Correct(string(r.Seq))
		if existing, found := merged[snapped]; found {
			existing.Count += r.Count
			continue
		}
		nr := &Record{Seq: []byte(snapped), Count: r.Count, Info: r.Info}
		merged[snapped] = nr
		order = append(order, snapped)
	}
	out := make([]*Record, 0, len(order))
	for _, seq := range order {
		out = append(out, merged[seq])
	}
	b.Records = out
}
