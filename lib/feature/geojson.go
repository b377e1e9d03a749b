package feature

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-resty/resty/v2"
)

type geojsonGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

type geojsonFeature struct {
	Type       string           `json:"type"`
	Properties map[string]any   `json:"properties"`
	Geometry   *geojsonGeometry `json:"geometry"`
}

type geojsonCollection struct {
	Type     string           `json:"type"`
	Features []geojsonFeature `json:"features"`
}

// DecodeGeoJSON reads a GeoJSON FeatureCollection into a Collection. The
// schema is inferred from the union of all property names, typed by the
// first non-null value seen for each name. Point, Polygon and MultiPolygon
// geometries are kept (polygons as their outer ring); other geometry types
// are ignored.
func DecodeGeoJSON(data []byte) (*Collection, error) {
	var raw geojsonCollection
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}
	if raw.Type != "FeatureCollection" {
		return nil, fmt.Errorf("expected a FeatureCollection, got %q", raw.Type)
	}

	schema := NewSchema()
	var names []string
	seen := map[string]bool{}
	for _, f := range raw.Features {
		for name := range f.Properties {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	for _, name := range names {
		schema.AddAttribute(name, inferType(raw.Features, name))
	}

	out := NewCollection(schema)
	for _, rawFeature := range raw.Features {
		f := New(schema)
		for name, value := range rawFeature.Properties {
			if value == nil {
				continue
			}
			err := f.SetAttribute(name, value)
			if err != nil {
				return nil, err
			}
		}
		if rawFeature.Geometry != nil {
			geom, err := decodeGeometry(rawFeature.Geometry)
			if err != nil {
				return nil, err
			}
			f.SetGeometry(geom)
		}
		out.Add(f)
	}
	return out, nil
}

func inferType(features []geojsonFeature, name string) AttributeType {
	for _, f := range features {
		switch f.Properties[name].(type) {
		case nil:
			continue
		case float64:
			return TypeNumber
		case bool:
			return TypeBool
		default:
			return TypeString
		}
	}
	return TypeString
}

func decodeGeometry(raw *geojsonGeometry) (*Geometry, error) {
	switch raw.Type {
	case "Point":
		var coords [2]float64
		err := json.Unmarshal(raw.Coordinates, &coords)
		if err != nil {
			return nil, fmt.Errorf("decode point: %w", err)
		}
		return PointGeometry(coords[0], coords[1]), nil
	case "Polygon":
		var rings [][][2]float64
		err := json.Unmarshal(raw.Coordinates, &rings)
		if err != nil {
			return nil, fmt.Errorf("decode polygon: %w", err)
		}
		if len(rings) == 0 {
			return nil, nil
		}
		return outlineGeometry(rings[0]), nil
	case "MultiPolygon":
		var polys [][][][2]float64
		err := json.Unmarshal(raw.Coordinates, &polys)
		if err != nil {
			return nil, fmt.Errorf("decode multipolygon: %w", err)
		}
		if len(polys) == 0 || len(polys[0]) == 0 {
			return nil, nil
		}
		return outlineGeometry(polys[0][0]), nil
	}
	return nil, nil
}

func outlineGeometry(ring [][2]float64) *Geometry {
	g := &Geometry{}
	for _, c := range ring {
		g.Outline = append(g.Outline, Point{Lon: c[0], Lat: c[1]})
	}
	return g
}

// LoadGeoJSON reads a collection from a local file or, when the source is an
// http(s) url, fetches it with the given resty client.
func LoadGeoJSON(ctx context.Context, client *resty.Client, source string) (*Collection, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		res, err := client.R().SetContext(ctx).Get(source)
		if err != nil {
			return nil, err
		}
		if res.StatusCode() >= 400 {
			return nil, fmt.Errorf("fetch %s: status %d", source, res.StatusCode())
		}
		return DecodeGeoJSON(res.Body())
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, err
	}
	return DecodeGeoJSON(data)
}
