package tree

import (
	"github.com/sahilm/fuzzy"
)

// Match is a node whose label matched a fuzzy pattern.
type Match struct {
	Visit
	Label          string
	Score          int
	MatchedIndexes []int
}

// Label returns the text a node is fuzzy-matched against: its type, followed
// by "#key" when it has a key.
func Label(n *Node) string {
	if n.HasKey() {
		return n.Type + "#" + *n.Key
	}

	return n.Type
}

// Find fuzzy-matches pattern against the label of every node of root and
// returns the matches, best first. Ties keep pre-order.
func Find(root *Node, pattern string) []Match {
	var (
		visits []Visit
		labels []string
	)

	for v := range root.All() {
		visits = append(visits, v)
		labels = append(labels, Label(v.Node))
	}

	found := fuzzy.Find(pattern, labels)
	out := make([]Match, len(found))

	for i, m := range found {
		out[i] = Match{
			Visit:          visits[m.Index],
			Label:          m.Str,
			Score:          m.Score,
			MatchedIndexes: m.MatchedIndexes,
		}
	}

	return out
}
