package feature

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleGeoJSON = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"properties": {"name": "Town Hall", "floors": 3, "public": true},
			"geometry": {"type": "Point", "coordinates": [-123.36, 48.43]}
		},
		{
			"type": "Feature",
			"properties": {"name": "Library", "ref": "LIB-1"},
			"geometry": {
				"type": "Polygon",
				"coordinates": [[[-123.1, 48.4], [-123.1, 48.5], [-123.0, 48.5], [-123.0, 48.4]]]
			}
		},
		{
			"type": "Feature",
			"properties": {"name": "Unplaced"},
			"geometry": null
		}
	]
}`

func TestDecodeGeoJSON(t *testing.T) {
	collection, err := DecodeGeoJSON([]byte(sampleGeoJSON))
	require.NoError(t, err)
	require.Equal(t, 3, collection.Len())

	schema := collection.Schema()
	require.Equal(t, []string{"floors", "name", "public", "ref"}, schema.AttributeNames())

	typ, ok := schema.AttributeType("floors")
	require.True(t, ok)
	require.Equal(t, TypeNumber, typ)
	typ, _ = schema.AttributeType("public")
	require.Equal(t, TypeBool, typ)
	typ, _ = schema.AttributeType("name")
	require.Equal(t, TypeString, typ)

	hall := collection.Features()[0]
	require.Equal(t, "Town Hall", hall.StringAttribute("name"))
	require.NotNil(t, hall.Geometry())
	require.Equal(t, Point{Lon: -123.36, Lat: 48.43}, hall.Geometry().Centroid())

	library := collection.Features()[1]
	require.NotNil(t, library.Geometry())
	require.Len(t, library.Geometry().Outline, 4)

	unplaced := collection.Features()[2]
	require.Nil(t, unplaced.Geometry())
}

func TestDecodeGeoJSONRejectsNonCollection(t *testing.T) {
	_, err := DecodeGeoJSON([]byte(`{"type": "Feature"}`))
	require.Error(t, err)
}

func TestDistanceMeters(t *testing.T) {
	a := Point{Lon: 0, Lat: 0}
	require.Equal(t, 0.0, DistanceMeters(a, a))

	// One degree of latitude is roughly 111km.
	b := Point{Lon: 0, Lat: 1}
	d := DistanceMeters(a, b)
	require.InDelta(t, 111_000, d, 500)
}

func TestFeatureAttributesFollowSchema(t *testing.T) {
	schema := NewSchema()
	schema.AddAttribute("name", TypeString)

	f := New(schema)
	require.NoError(t, f.SetAttribute("name", "depot"))
	require.Error(t, f.SetAttribute("missing", 1))

	require.Equal(t, "depot", f.StringAttribute("name"))
	require.Equal(t, "", f.StringAttribute("missing"))
}
