package render

import (
	"github.com/milepost-service/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature property keys understood by the map client.
const (
	PropKind      = "kind"
	PropPopup     = "popup"
	PropIconKind  = "icon"
	PropIconLabel = "label"
	PropColor     = "color"

	KindMarker   = "marker"
	KindPolyline = "polyline"
)

// GeoJSONLayer collects drawn markers and polylines as GeoJSON features.
type GeoJSONLayer struct {
	fc *geojson.FeatureCollection
}

func NewGeoJSONLayer() *GeoJSONLayer {
	return &GeoJSONLayer{fc: geojson.NewFeatureCollection()}
}

func (l *GeoJSONLayer) Clear() {
	l.fc.Features = make([]*geojson.Feature, 0)
}

func (l *GeoJSONLayer) AddMarker(lat, lon float64, popupHTML string, icon *domain.MarkerIcon) {
	f := geojson.NewFeature(orb.Point{lon, lat})
	f.Properties[PropKind] = KindMarker
	f.Properties[PropPopup] = popupHTML
	if icon != nil {
		f.Properties[PropIconKind] = string(icon.Kind)
		f.Properties[PropIconLabel] = icon.Label
	}
	l.fc.Append(f)
}

func (l *GeoJSONLayer) AddPolyline(points []orb.Point, color string, popupHTML string) {
	ls := make(orb.LineString, len(points))
	copy(ls, points)

	f := geojson.NewFeature(ls)
	f.Properties[PropKind] = KindPolyline
	f.Properties[PropColor] = color
	if popupHTML != "" {
		f.Properties[PropPopup] = popupHTML
	}
	l.fc.Append(f)
}

// FeatureCollection returns the features drawn so far.
func (l *GeoJSONLayer) FeatureCollection() *geojson.FeatureCollection {
	return l.fc
}

// Len returns the number of features.
func (l *GeoJSONLayer) Len() int {
	return len(l.fc.Features)
}
