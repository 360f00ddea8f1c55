package milepost

import (
	"strconv"

	"github.com/milepost-service/internal/domain"
	"github.com/paulmach/orb"
)

func record(railroad string, lat, lon, milepost float64) domain.RawCrossingRecord {
	mp := domain.FlexString(strconv.FormatFloat(milepost, 'f', -1, 64))
	return domain.RawCrossingRecord{
		Lat:      domain.FlexString(strconv.FormatFloat(lat, 'f', -1, 64)),
		Long:     domain.FlexString(strconv.FormatFloat(lon, 'f', -1, 64)),
		Railroad: railroad,
		Milepost: &mp,
	}
}

func point(railroad string, lat, lon, milepost float64) *domain.Point {
	return &domain.Point{Latitude: lat, Longitude: lon, Railroad: railroad, Milepost: milepost}
}

func mileposts(line domain.RailLine) []float64 {
	out := make([]float64, len(line.Points))
	for i, p := range line.Points {
		out[i] = p.Milepost
	}
	return out
}

// track lays points along a parallel at 41N, 0.001 degrees (about 84 m) apart.
func track(railroad string, startLon float64, mps ...float64) []*domain.Point {
	out := make([]*domain.Point, len(mps))
	for i, mp := range mps {
		out[i] = point(railroad, 41, startLon+float64(i)*0.001, mp)
	}
	return out
}

var chicago = orb.Point{-87.6298, 41.8781}
