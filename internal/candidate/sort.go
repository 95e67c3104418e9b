package candidate

import (
	"sort"

	"github.com/raidtools/lootrun/pkg/core"
)

// SortDefault orders candidates by the fallback/tie-break ranking:
// near-extraction first; then not-near-enemy-spawn; then not-dangerous; then
// higher cluster score; then ARC over cache when both are safe and near
// extraction; then farther enemy-spawn distance; then lower danger score;
// then lower distance to extraction. Stable, so builder order breaks
// remaining ties deterministically.
func SortDefault(candidates []*core.LootCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return Less(candidates[i], candidates[j])
	})
}

// Less is the default-ordering comparator, exposed so the planner can apply
// the same tie-break to look-ahead score ties.
func Less(a, b *core.LootCandidate) bool {
	if a.NearExtraction != b.NearExtraction {
		return a.NearExtraction
	}
	if a.NearEnemySpawn != b.NearEnemySpawn {
		return !a.NearEnemySpawn
	}
	if a.Dangerous() != b.Dangerous() {
		return !a.Dangerous()
	}
	if a.ClusterScore != b.ClusterScore {
		return a.ClusterScore > b.ClusterScore
	}

	// ARC before cache, but only in the safe near-extraction band
	if a.NearExtraction && b.NearExtraction &&
		!a.Dangerous() && !b.Dangerous() &&
		!a.NearEnemySpawn && !b.NearEnemySpawn &&
		a.Source != b.Source {
		return a.Source == core.SourceArc
	}

	if a.NearestSpawnDistance != b.NearestSpawnDistance {
		return a.NearestSpawnDistance > b.NearestSpawnDistance
	}
	if a.Danger.Score != b.Danger.Score {
		return a.Danger.Score < b.Danger.Score
	}
	return a.DistanceToExtraction < b.DistanceToExtraction
}
