package milepost

import "github.com/milepost-service/internal/domain"

// RailroadGroup - points of a single railroad.
type RailroadGroup struct {
	Railroad string
	Points   []*domain.Point
}

// GroupByRailroad partitions points by their railroad field, keeping groups
// in order of first appearance and points in input order.
func GroupByRailroad(points []*domain.Point) []RailroadGroup {
	groups := make([]RailroadGroup, 0)
	index := make(map[string]int)

	for _, p := range points {
		name := p.Railroad
		if name == "" {
			name = domain.UnknownRailroad
		}

		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, RailroadGroup{Railroad: name})
		}
		groups[i].Points = append(groups[i].Points, p)
	}

	return groups
}
