// Package cluster partitions skill embeddings into thematic groups with a
// seeded k-means so that repeated runs over the same input agree.
package cluster

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/jonathan/skill-gap-advisor/internal/llm"
)

// Defaults mirror the usual k-means settings: ten seeded restarts, bounded iterations.
const (
	DefaultSeed     int64 = 42
	DefaultRestarts       = 10
	DefaultMaxIter        = 300
)

// Options tunes KMeans
type Options struct {
	Seed     int64
	Restarts int
	MaxIter  int
}

// DefaultOptions returns the default k-means options
func DefaultOptions() Options {
	return Options{Seed: DefaultSeed, Restarts: DefaultRestarts, MaxIter: DefaultMaxIter}
}

// KMeans assigns each point to one of k clusters and returns the labels.
// The run with the lowest inertia across restarts wins; earlier runs win ties.
func KMeans(points [][]float64, k int, opts Options) ([]int, error) {
	n := len(points)
	if n == 0 {
		return nil, fmt.Errorf("no points to cluster")
	}
	if k < 1 || k > n {
		return nil, fmt.Errorf("invalid cluster count %d for %d points", k, n)
	}
	dim := len(points[0])
	for i, p := range points {
		if len(p) != dim {
			return nil, fmt.Errorf("point %d has dimension %d, expected %d", i, len(p), dim)
		}
	}
	if opts.Restarts < 1 {
		opts.Restarts = 1
	}
	if opts.MaxIter < 1 {
		opts.MaxIter = DefaultMaxIter
	}

	var bestLabels []int
	bestInertia := math.Inf(1)
	for r := 0; r < opts.Restarts; r++ {
		rng := rand.New(rand.NewSource(opts.Seed + int64(r)))
		labels, inertia := lloyd(points, seedCenters(points, k, rng), opts.MaxIter)
		if inertia < bestInertia {
			bestInertia = inertia
			bestLabels = labels
		}
	}
	return bestLabels, nil
}

// seedCenters picks initial centers with k-means++ sampling
func seedCenters(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centers := make([][]float64, 0, k)
	centers = append(centers, clone(points[rng.Intn(len(points))]))

	dist := make([]float64, len(points))
	for len(centers) < k {
		var total float64
		for i, p := range points {
			dist[i] = math.Inf(1)
			for _, c := range centers {
				if d := sqDist(p, c); d < dist[i] {
					dist[i] = d
				}
			}
			total += dist[i]
		}

		next := rng.Intn(len(points))
		if total > 0 {
			target := rng.Float64() * total
			var acc float64
			for i, d := range dist {
				acc += d
				if acc >= target && d > 0 {
					next = i
					break
				}
			}
		}
		centers = append(centers, clone(points[next]))
	}
	return centers
}

func lloyd(points, centers [][]float64, maxIter int) ([]int, float64) {
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = -1
	}

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, p := range points {
			if l := nearest(p, centers); l != labels[i] {
				labels[i] = l
				changed = true
			}
		}
		if !changed {
			break
		}
		updateCenters(points, labels, centers)
	}

	var inertia float64
	for i, p := range points {
		inertia += sqDist(p, centers[labels[i]])
	}
	return labels, inertia
}

// updateCenters moves each center to the mean of its points; empty clusters keep their center
func updateCenters(points [][]float64, labels []int, centers [][]float64) {
	dim := len(centers[0])
	sums := make([][]float64, len(centers))
	counts := make([]int, len(centers))
	for c := range sums {
		sums[c] = make([]float64, dim)
	}
	for i, p := range points {
		l := labels[i]
		counts[l]++
		for d, v := range p {
			sums[l][d] += v
		}
	}
	for c := range centers {
		if counts[c] == 0 {
			continue
		}
		for d := range centers[c] {
			centers[c][d] = sums[c][d] / float64(counts[c])
		}
	}
}

func nearest(p []float64, centers [][]float64) int {
	best, bestDist := 0, math.Inf(1)
	for c, center := range centers {
		if d := sqDist(p, center); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func sqDist(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

func clone(p []float64) []float64 {
	out := make([]float64, len(p))
	copy(out, p)
	return out
}

// EmbeddingClusterer clusters skill names by their embedding vectors
type EmbeddingClusterer struct {
	embedder llm.Embedder
	opts     Options
}

// NewEmbeddingClusterer creates a clusterer backed by embedder
func NewEmbeddingClusterer(embedder llm.Embedder, opts Options) *EmbeddingClusterer {
	return &EmbeddingClusterer{embedder: embedder, opts: opts}
}

// Cluster embeds skills and returns one label per skill
func (c *EmbeddingClusterer) Cluster(ctx context.Context, skills []string, k int) ([]int, error) {
	if c.embedder == nil {
		return nil, fmt.Errorf("embeddings unavailable")
	}
	vectors, err := c.embedder.Embed(ctx, skills)
	if err != nil {
		return nil, fmt.Errorf("failed to embed skills: %w", err)
	}
	if len(vectors) != len(skills) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(skills), len(vectors))
	}
	return KMeans(vectors, k, c.opts)
}
