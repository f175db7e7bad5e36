package trie

import "github.com/grailbio/seqcluster/barcode"

// Search walks the whole trie looking for every committed terminal within
// edit distance tau of query, depositing hits into tower (which the caller
// must Reset between calls). Every DP row is computed fresh for this call:
// a row is shared only across sibling branches of the same query's descent
// (the whole point of searching a trie instead of comparing query against
// every sequence in turn), never across two different queries, since a row
// computed for one query's bytes is meaningless for another's.
func (t *Trie) Search(query []byte, tau int, tower *HitTower) {
	if len(query) != t.Height {
		panic("trie: query length does not match trie height")
	}
	root := make([]int, t.Height+1)
	root[0] = 0
	for j := 1; j < len(root); j++ {
		root[j] = root[j-1] + costIns(query[j-1])
	}
	descend(t.root, 0, root, query, tau, tower)
}

// costDel is the cost of deleting a trie-path byte that is not matched
// against any query byte: zero for padding (it is not part of the real
// sequence), one for a real base or the paired-end separator.
func costDel(c byte) int {
	if c == barcode.Pad {
		return 0
	}
	return 1
}

// costIns mirrors costDel for a query byte inserted against no trie-path
// byte.
func costIns(c byte) int {
	if c == barcode.Pad {
		return 0
	}
	return 1
}

// descend explores node (at depth d, with row being the DP row for the
// path from the root to node) and its subtree.
func descend(node *Node, d int, row []int, query []byte, tau int, tower *HitTower) {
	if d == len(row)-1 {
		if node.terminal != nil && row[d] <= tau {
			tower.push(row[d], node.terminal)
		}
		return
	}

	for code := 0; code < NumCodes; code++ {
		child := node.children[code]
		if child == nil {
			continue
		}

		childRow := nextRow(row, code, query)
		if minEntry(childRow) > tau {
			continue
		}
		descend(child, d+1, childRow, query, tau, tower)
	}
}

// nextRow computes the DP row for extending the trie path by one more
// byte (the one alphabet[code] represents), given the parent's row,
// following the same substitution/insertion/deletion recurrence as the
// teacher's util.Levenshtein. Deleting or inserting a padding byte costs
// nothing (see the package doc); every other cost is 1, exactly as in the
// teacher's DP.
func nextRow(row []int, code int, query []byte) []int {
	c := alphabet[code]
	delCost := costDel(c)
	next := make([]int, len(row))
	next[0] = row[0] + delCost
	for j := 1; j < len(row); j++ {
		q := query[j-1]
		subCost := 1
		if q == c {
			subCost = 0
		}
		min := row[j] + delCost // deletion of the trie-path byte
		if v := next[j-1] + costIns(q); v < min {
			min = v // insertion of the query byte
		}
		if v := row[j-1] + subCost; v < min {
			min = v // match or substitution
		}
		next[j] = min
	}
	return next
}

func minEntry(row []int) int {
	m := row[0]
	for _, v := range row[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
