package geo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointRoundTrip(t *testing.T) {
	raw := json.RawMessage(`{"type":"Point","coordinates":[77.5946,12.9716]}`)

	b, err := PointToWKB(raw)
	require.NoError(t, err)
	require.NotEmpty(t, b)

	back, err := WKBToGeoJSON(b)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(back))
}

func TestPointToWKBRejects(t *testing.T) {
	cases := map[string]string{
		"not json":     `{"type":`,
		"line":         `{"type":"LineString","coordinates":[[0,0],[1,1]]}`,
		"out of range": `{"type":"Point","coordinates":[200,10]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := PointToWKB(json.RawMessage(raw))
			assert.Error(t, err)
		})
	}
}

func TestEmptyGeometry(t *testing.T) {
	b, err := PointToWKB(nil)
	require.NoError(t, err)
	assert.Nil(t, b)

	g, err := WKBToGeoJSON(nil)
	require.NoError(t, err)
	assert.Nil(t, g)
}
