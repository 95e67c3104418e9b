// Package arcmatch joins quest/mission ARC entities to map coordinates by
// name. The two datasets share no key, so this is a best-effort heuristic
// join; false positives and negatives are expected and accepted.
package arcmatch

import (
	"strings"

	"github.com/raidtools/lootrun/pkg/core"
)

// Match is one ARC mission resolved to a map coordinate.
type Match struct {
	Arc        core.ArcMission
	Position   core.Position3D
	MatchedPOI string // ID of the POI or waypoint that supplied the coordinate
}

// MatcherFunc is the swappable join strategy. Keeping the matcher behind a
// named function type lets a future exact-key join replace the substring
// heuristic without touching the planner.
type MatcherFunc func(arcs []core.ArcMission, pois []core.PointOfInterest, waypoints []core.Waypoint) []Match

// MatchARCsToMap resolves each ARC to a coordinate via case-insensitive,
// bidirectional substring matching on the ARC's location hint and name.
// POIs are checked before waypoints; the first hit wins. Unmatched ARCs are
// dropped — without a coordinate they cannot enter later planning stages.
func MatchARCsToMap(arcs []core.ArcMission, pois []core.PointOfInterest, waypoints []core.Waypoint) []Match {
	var matches []Match

	for _, arc := range arcs {
		hints := arcHints(arc)
		if len(hints) == 0 {
			continue
		}

		matched := false
		for _, poi := range pois {
			if nameMatchesAny(poi.Name, hints) {
				matches = append(matches, Match{
					Arc:        arc,
					Position:   poi.Position,
					MatchedPOI: poi.ID,
				})
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		for _, wp := range waypoints {
			if nameMatchesAny(wp.Name, hints) {
				matches = append(matches, Match{
					Arc:        arc,
					Position:   wp.Position,
					MatchedPOI: wp.ID,
				})
				break
			}
		}
	}

	return matches
}

func arcHints(arc core.ArcMission) []string {
	var hints []string
	if strings.TrimSpace(arc.Location) != "" {
		hints = append(hints, arc.Location)
	}
	if strings.TrimSpace(arc.Name) != "" {
		hints = append(hints, arc.Name)
	}
	return hints
}

func nameMatchesAny(name string, hints []string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	for _, hint := range hints {
		if namesMatch(name, hint) {
			return true
		}
	}
	return false
}

// namesMatch is the bidirectional substring test, case-insensitive.
func namesMatch(a, b string) bool {
	la := strings.ToLower(strings.TrimSpace(a))
	lb := strings.ToLower(strings.TrimSpace(b))
	if la == "" || lb == "" {
		return false
	}
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}
