// Package render draws pipeline output onto a domain.Layer.
package render

import (
	"fmt"
	"hash/fnv"
	"html"
	"math"
	"strconv"

	"github.com/milepost-service/internal/domain"
	"github.com/milepost-service/internal/milepost"
	"github.com/paulmach/orb"
)

const (
	LineColor   = "#0078ff"
	targetLabel = "T"
)

// Draw replaces the layer's content with the target marker and the plan.
func Draw(layer domain.Layer, anchor orb.Point, plan milepost.RenderPlan) {
	layer.Clear()
	drawTarget(layer, anchor)

	for _, m := range plan.Markers {
		layer.AddMarker(m.Latitude, m.Longitude, markerPopup(m), &domain.MarkerIcon{
			Kind:  domain.MarkerMilepost,
			Label: formatMilepost(m.Milepost),
		})
	}

	for _, line := range plan.Polylines {
		if !line.Drawable() {
			continue
		}
		first, last := line.Points[0], line.Points[len(line.Points)-1]
		popup := fmt.Sprintf("Milepost Segment: %s - %s", formatMilepost(first.Milepost), formatMilepost(last.Milepost))
		layer.AddPolyline(line.Path(), LineColor, popup)
	}
}

// DrawSegments replaces the layer's content with every segment, one color
// per railroad.
func DrawSegments(layer domain.Layer, anchor orb.Point, groups []milepost.RailroadSegments) {
	layer.Clear()
	drawTarget(layer, anchor)

	for _, g := range groups {
		color := RailroadColor(g.Railroad)
		for _, seg := range g.Segments {
			if !seg.Drawable() {
				continue
			}
			first, last := seg.Points[0], seg.Points[len(seg.Points)-1]
			popup := fmt.Sprintf("<b>Railroad:</b> %s<br>Milepost Segment: %s - %s",
				html.EscapeString(g.Railroad), formatMilepost(first.Milepost), formatMilepost(last.Milepost))
			layer.AddPolyline(seg.Path(), color, popup)
		}
	}
}

// RailroadColor picks a stable color for a railroad name.
func RailroadColor(railroad string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(railroad))
	return fmt.Sprintf("#%06X", h.Sum32()&0xFFFFFF)
}

func drawTarget(layer domain.Layer, anchor orb.Point) {
	layer.AddMarker(anchor.Lat(), anchor.Lon(), "<b>Target</b>", &domain.MarkerIcon{
		Kind:  domain.MarkerTarget,
		Label: targetLabel,
	})
}

func markerPopup(m domain.ProjectedPoint) string {
	return fmt.Sprintf("<b>Railroad:</b> %s<br><b>Milepost:</b> %s<br><b>State:</b> %s<br><small>ID: %s</small>",
		html.EscapeString(orNA(m.Source.Railroad)),
		formatMilepost(m.Milepost),
		html.EscapeString(orNA(m.Source.StateAb)),
		html.EscapeString(orNA(m.Source.ObjectID.String())),
	)
}

func formatMilepost(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
