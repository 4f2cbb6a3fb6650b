package layout

import (
	"math"
	"sort"

	"github.com/tsawler/rubrica/model"
)

// FontCluster is a representative font size standing in for all observed
// sizes within the tolerance band.
type FontCluster struct {
	// Size is the cluster representative, the mean of the member sizes
	Size float64

	// Members are the distinct rounded sizes absorbed into this cluster,
	// descending
	Members []float64
}

// ClusterConfig holds configuration for font size clustering
type ClusterConfig struct {
	// Tolerance is the maximum distance from a cluster seed for a size to
	// be absorbed into that cluster; larger values merge more sizes into
	// fewer heading levels (default: 0.5 points)
	Tolerance float64
}

// DefaultClusterConfig returns sensible default configuration
func DefaultClusterConfig() ClusterConfig {
	return ClusterConfig{
		Tolerance: 0.5,
	}
}

// FontClusterer groups the font sizes observed in a document into a small
// ordered set of representative sizes. The largest clusters, excluding the
// one matching the title, map to H1 through H3 during assignment.
type FontClusterer struct {
	config ClusterConfig
}

// NewFontClusterer creates a new clusterer with default configuration
func NewFontClusterer() *FontClusterer {
	return &FontClusterer{
		config: DefaultClusterConfig(),
	}
}

// NewFontClustererWithConfig creates a clusterer with custom configuration
func NewFontClustererWithConfig(config ClusterConfig) *FontClusterer {
	return &FontClusterer{
		config: config,
	}
}

// Cluster computes the size hierarchy for a set of elements.
//
// The algorithm is greedy single-link clustering over the sorted distinct
// sizes: take the largest remaining size as a seed, absorb every remaining
// size within the tolerance band, represent the cluster by the mean of the
// absorbed sizes, and repeat. Every observed size belongs to exactly one
// cluster and the returned clusters are sorted descending, so the result is
// deterministic for a given size set and tolerance.
func (c *FontClusterer) Cluster(elements []model.TextElement) []FontCluster {
	distinct := make(map[float64]struct{})
	for _, el := range elements {
		if el.FontSize > 0 {
			distinct[roundSize(el.FontSize)] = struct{}{}
		}
	}
	if len(distinct) == 0 {
		return nil
	}

	sizes := make([]float64, 0, len(distinct))
	for s := range distinct {
		sizes = append(sizes, s)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))

	var clusters []FontCluster
	for len(sizes) > 0 {
		seed := sizes[0]
		var members []float64
		var rest []float64
		for _, s := range sizes {
			if absFloat(s-seed) <= c.config.Tolerance {
				members = append(members, s)
			} else {
				rest = append(rest, s)
			}
		}

		sum := 0.0
		for _, s := range members {
			sum += s
		}
		clusters = append(clusters, FontCluster{
			Size:    sum / float64(len(members)),
			Members: members,
		})
		sizes = rest
	}

	sort.Slice(clusters, func(i, j int) bool {
		return clusters[i].Size > clusters[j].Size
	})
	return clusters
}

// roundSize rounds a font size to two decimal places, the resolution used
// for clustering.
func roundSize(v float64) float64 {
	return math.Round(v*100) / 100
}

// nearestCluster returns the index of the cluster whose representative size
// is closest to the given size, and the absolute distance. Returns -1 when
// clusters is empty.
func nearestCluster(clusters []FontCluster, size float64) (int, float64) {
	best := -1
	bestDelta := math.MaxFloat64
	for i, c := range clusters {
		delta := absFloat(size - c.Size)
		if delta < bestDelta {
			best = i
			bestDelta = delta
		}
	}
	return best, bestDelta
}
