// Package format renders planned loot runs for humans: a numbered text
// briefing and an SVG overview image. JSON output is plain marshaling of the
// path and lives with the CLI.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/raidtools/lootrun/internal/util"
	"github.com/raidtools/lootrun/pkg/core"
)

// WriteText renders the path as a numbered briefing.
func WriteText(w io.Writer, path *core.LootRunPath) error {
	if path == nil || len(path.Waypoints) == 0 {
		_, err := fmt.Fprintln(w, "No viable loot run.")
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Loot run for %s (%s)\n", path.MapName, path.MapID)
	fmt.Fprintf(&b, "Total distance %s, estimated time %s\n\n",
		util.FormatUnits(path.TotalDistance), util.FormatSeconds(path.EstimatedTime))

	for _, wp := range path.Waypoints {
		fmt.Fprintf(&b, "%2d. [%-10s] %s", wp.Order+1, wp.Type, wp.Instruction)
		fmt.Fprintf(&b, " (T+%s", util.FormatSeconds(wp.ArrivalTime))
		if wp.WaitTime != nil && *wp.WaitTime > 0 {
			fmt.Fprintf(&b, ", wait %s", util.FormatSeconds(*wp.WaitTime))
		}
		if wp.SafeWindow != nil {
			fmt.Fprintf(&b, ", safe for %s", util.FormatSeconds(*wp.SafeWindow))
		}
		b.WriteString(")\n")
		if wp.DangerLevel != "" && wp.DangerLevel != core.DangerLow {
			fmt.Fprintf(&b, "      danger: %s (%s)\n", wp.DangerLevel, strings.Join(wp.DangerReasons, "; "))
		}
	}

	if risk := path.Waypoints[0].InterceptionRisk; risk != nil {
		b.WriteString("\nInterception outlook:\n")
		for _, t := range risk.Threats {
			status := "you arrive first"
			if t.CanBeatYou {
				status = "they can beat you there"
			}
			fmt.Fprintf(&b, "  stop %d: %s reaches it in %s, %s\n",
				t.WaypointOrder, t.SpawnName, util.FormatSeconds(t.TravelTime), status)
		}
		if risk.EarliestContact != nil {
			fmt.Fprintf(&b, "  earliest contact: T+%s near (%.0f, %.0f) from %s\n",
				util.FormatSeconds(risk.EarliestContact.Time),
				risk.EarliestContact.Position.X, risk.EarliestContact.Position.Y,
				risk.EarliestContact.SpawnName)
		}
		for _, probe := range risk.LateSpawnProbes {
			closest := closestThreat(probe.Threats)
			if closest == nil {
				continue
			}
			fmt.Fprintf(&b, "  late spawn at T+%s: %s is %s away from you\n",
				util.FormatSeconds(probe.Time), closest.SpawnName,
				util.FormatSeconds(closest.TravelTime))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func closestThreat(threats []core.LateSpawnThreat) *core.LateSpawnThreat {
	var best *core.LateSpawnThreat
	for i := range threats {
		if best == nil || threats[i].TravelTime < best.TravelTime {
			best = &threats[i]
		}
	}
	return best
}
