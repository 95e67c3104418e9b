package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/raidtools/lootrun/pkg/core"
)

const (
	svgWidth  = 900.0
	svgHeight = 700.0
	svgMargin = 40.0
)

// waypointColors keys the route markers by waypoint type.
var waypointColors = map[core.PathWaypointType]string{
	core.PathSpawn:      "#2f9e44",
	core.PathCache:      "#f08c00",
	core.PathArc:        "#9c36b5",
	core.PathExtraction: "#1971c2",
	core.PathRaiderKey:  "#e03131",
	core.PathOther:      "#868e96",
}

// RenderSVG draws the planned route over the map's POIs and waypoints. The
// y axis is flipped so map north stays up.
func RenderSVG(bundle *core.MapBundle, path *core.LootRunPath) string {
	minX, minY, maxX, maxY := bounds(bundle, path)
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}
	scale := math.Min((svgWidth-2*svgMargin)/spanX, (svgHeight-2*svgMargin)/spanY)

	project := func(p core.Position3D) (float64, float64) {
		x := svgMargin + (p.X-minX)*scale
		y := svgHeight - svgMargin - (p.Y-minY)*scale
		return x, y
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`,
		svgWidth, svgHeight, svgWidth, svgHeight)
	b.WriteString("\n")
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="#1a1b1e"/>`)
	b.WriteString("\n")

	// background POIs
	if bundle != nil {
		for _, poi := range bundle.POIs {
			x, y := project(poi.Position)
			fill := "#495057"
			if poi.Type == core.POIObjective {
				fill = "#c92a2a"
			}
			fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="3" fill="%s" opacity="0.6"><title>%s</title></circle>`,
				x, y, fill, escape(poi.Name))
			b.WriteString("\n")
		}
	}

	if path != nil && len(path.Waypoints) > 1 {
		// route polyline
		points := make([]string, 0, len(path.Waypoints))
		for _, wp := range path.Waypoints {
			x, y := project(wp.Position)
			points = append(points, fmt.Sprintf("%.1f,%.1f", x, y))
		}
		fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="#fab005" stroke-width="2" stroke-dasharray="6,3"/>`,
			strings.Join(points, " "))
		b.WriteString("\n")
	}

	if path != nil {
		for _, wp := range path.Waypoints {
			x, y := project(wp.Position)
			color, ok := waypointColors[wp.Type]
			if !ok {
				color = waypointColors[core.PathOther]
			}
			fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="7" fill="%s" stroke="#f8f9fa" stroke-width="1.5"><title>%s</title></circle>`,
				x, y, color, escape(wp.Instruction))
			b.WriteString("\n")
			fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="10" fill="#f8f9fa" text-anchor="middle">%d</text>`,
				x, y+3.5, wp.Order+1)
			b.WriteString("\n")
		}
	}

	title := ""
	if path != nil {
		title = path.MapName
	} else if bundle != nil {
		title = bundle.MapName
	}
	fmt.Fprintf(&b, `<text x="%.0f" y="%.0f" font-size="16" fill="#f8f9fa">%s</text>`,
		svgMargin, svgMargin-14, escape(title))
	b.WriteString("\n</svg>\n")
	return b.String()
}

// bounds spans every drawable coordinate so nothing clips.
func bounds(bundle *core.MapBundle, path *core.LootRunPath) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	grow := func(p core.Position3D) {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	if bundle != nil {
		for _, poi := range bundle.POIs {
			grow(poi.Position)
		}
		for _, wp := range bundle.Waypoints {
			grow(wp.Position)
		}
	}
	if path != nil {
		for _, wp := range path.Waypoints {
			grow(wp.Position)
		}
	}
	if math.IsInf(minX, 1) {
		return 0, 0, 1, 1
	}
	return minX, minY, maxX, maxY
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
