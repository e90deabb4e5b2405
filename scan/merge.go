package scan

import (
	"sort"
	"strings"

	"github.com/fwojciec/offerscan"
)

// Confidence boost for multi-strategy agreement: a flat bonus per scan
// beyond the first contributing strategy, capped at 100.
const (
	twoStrategyBoost   = 10
	threeStrategyBoost = 15
	maxConfidence      = 100
)

// Merger deduplicates validated candidates across strategies by name
// similarity and assembles the final ranked product list.
type Merger struct {
	// Threshold is the minimum similarity for two candidates to merge.
	Threshold float64

	// Similarity scores candidate name pairs. Defaults to TokenSimilarity.
	Similarity offerscan.Similarity
}

// Merge groups candidates into clusters by transitive similarity and
// produces one MergedProduct per cluster, sorted by confidence descending
// with name order breaking ties.
//
// Clustering is transitive-closure based via union-find: if A~B and B~C,
// all three merge even when A and C alone fall under the threshold.
// Empty input produces empty output, never an error, and no cluster is
// dropped for being small - a single-candidate cluster surfaces as a
// low-confidence result.
func (m *Merger) Merge(candidates []offerscan.Candidate) ([]offerscan.MergedProduct, offerscan.MergeStats) {
	stats := offerscan.MergeStats{TotalBeforeMerge: len(candidates)}
	if len(candidates) == 0 {
		return []offerscan.MergedProduct{}, stats
	}

	sim := m.Similarity
	if sim == nil {
		sim = TokenSimilarity{}
	}

	uf := newUnionFind(len(candidates))
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			if sim.Score(candidates[i].Name, candidates[j].Name) >= m.Threshold {
				uf.union(i, j)
			}
		}
	}

	clusters := map[int][]offerscan.Candidate{}
	var order []int
	for i, c := range candidates {
		root := uf.find(i)
		if _, ok := clusters[root]; !ok {
			order = append(order, root)
		}
		clusters[root] = append(clusters[root], c)
	}

	products := make([]offerscan.MergedProduct, 0, len(order))
	for _, root := range order {
		products = append(products, mergeCluster(clusters[root]))
	}

	sort.SliceStable(products, func(i, j int) bool {
		if products[i].Confidence != products[j].Confidence {
			return products[i].Confidence > products[j].Confidence
		}
		return products[i].Name < products[j].Name
	})

	stats.FinalCount = len(products)
	stats.DuplicatesRemoved = stats.TotalBeforeMerge - stats.FinalCount
	return products, stats
}

// mergeCluster combines one similarity cluster into a single product.
// The canonical name and description come from the highest-confidence
// member; the category is the most specific non-generic one present;
// confidence starts at the member max and receives a flat boost per
// additional distinct contributing strategy.
func mergeCluster(members []offerscan.Candidate) offerscan.MergedProduct {
	best := members[0]
	for _, c := range members[1:] {
		if c.Confidence > best.Confidence {
			best = c
		}
	}

	strategySet := map[offerscan.Strategy]bool{}
	var category string
	seenEvidence := map[string]bool{}
	var evidence []string
	for _, c := range members {
		strategySet[c.Source] = true
		if moreSpecificCategory(c.Category, category) {
			category = c.Category
		}
		if c.Evidence != "" && !seenEvidence[c.Evidence] {
			seenEvidence[c.Evidence] = true
			evidence = append(evidence, c.Evidence)
		}
	}

	confidence := best.Confidence
	switch len(strategySet) {
	case 2:
		confidence += twoStrategyBoost
	case 3:
		confidence += threeStrategyBoost
	}
	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	return offerscan.MergedProduct{
		Name:        best.Name,
		Description: best.Description,
		Category:    category,
		Confidence:  confidence,
		Strategies:  sortedStrategies(strategySet),
		Evidence:    evidence,
	}
}

// moreSpecificCategory reports whether candidate should replace current:
// the most specific category is the longest non-generic string present.
func moreSpecificCategory(candidate, current string) bool {
	if isGenericCategory(candidate) {
		return false
	}
	if isGenericCategory(current) {
		return true
	}
	return len(candidate) > len(current)
}

func isGenericCategory(category string) bool {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "", "general", "other", "misc", "n/a":
		return true
	}
	return false
}

// sortedStrategies returns the contributing strategies in canonical
// pipeline order for deterministic output.
func sortedStrategies(set map[offerscan.Strategy]bool) []offerscan.Strategy {
	var out []offerscan.Strategy
	for _, s := range []offerscan.Strategy{
		offerscan.StrategyStructural,
		offerscan.StrategyCrossPage,
		offerscan.StrategySemantic,
	} {
		if set[s] {
			out = append(out, s)
		}
	}
	return out
}

// unionFind is a disjoint-set structure with path compression and union
// by rank, used for transitive-closure candidate clustering.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{
		parent: make([]int, n),
		rank:   make([]int, n),
	}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.rank[ra] < uf.rank[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	if uf.rank[ra] == uf.rank[rb] {
		uf.rank[ra]++
	}
}
