// Package cluster groups spatially close loot candidates so the planner can
// treat them as one efficient stop.
package cluster

import (
	"github.com/raidtools/lootrun/internal/geo"
	"github.com/raidtools/lootrun/pkg/core"
)

// Cluster is a spatial group of at least two candidates. Members[0] is the
// anchor: the earliest unassigned candidate in input order when the cluster
// was seeded.
type Cluster struct {
	Members []*core.LootCandidate
}

// Size returns the number of member candidates.
func (c *Cluster) Size() int {
	return len(c.Members)
}

// Dangerous reports whether any member sits above the low danger band.
func (c *Cluster) Dangerous() bool {
	for _, m := range c.Members {
		if m.Dangerous() {
			return true
		}
	}
	return false
}

// NearestMember returns the member closest to pos and its distance.
func (c *Cluster) NearestMember(pos core.Position3D) (*core.LootCandidate, float64) {
	var nearest *core.LootCandidate
	best := 0.0
	for _, m := range c.Members {
		d := geo.Distance(pos, m.Position)
		if nearest == nil || d < best {
			nearest = m
			best = d
		}
	}
	return nearest, best
}

// FindLootClusters groups candidates by single-pass, seed-order-dependent
// single linkage: each unassigned candidate, in input order, pulls every
// other still-unassigned candidate within clusterRadius into its cluster.
// Clusters are NOT transitively re-expanded from new members, so the result
// depends on input order — intentionally, since the seed becomes the anchor.
// Singletons are discarded.
func FindLootClusters(candidates []*core.LootCandidate, clusterRadius float64) []Cluster {
	if clusterRadius <= 0 || len(candidates) < 2 {
		return nil
	}

	assigned := make([]bool, len(candidates))
	var clusters []Cluster

	for i, seed := range candidates {
		if assigned[i] {
			continue
		}
		members := []*core.LootCandidate{seed}
		assigned[i] = true

		for j := range candidates {
			if assigned[j] {
				continue
			}
			if geo.Distance(seed.Position, candidates[j].Position) <= clusterRadius {
				members = append(members, candidates[j])
				assigned[j] = true
			}
		}

		if len(members) < 2 {
			// singleton, discarded; the seed stays consumed so later seeds
			// cannot re-anchor on it
			continue
		}
		clusters = append(clusters, Cluster{Members: members})
	}

	return clusters
}
