package edge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/slidefx/internal/geom"
)

var screen = geom.Rect(0, 0, 1920, 1080)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		window   geom.RectF
		expected Edge
		ok       bool
	}{
		{"flush left", geom.Rect(0, 40, 400, 100), Left, true},
		{"near left", geom.Rect(150, 40, 400, 100), Left, true},
		{"flush right", geom.Rect(1520, 40, 400, 100), Right, true},
		{"near right with margin", geom.Rect(1510, 900, 400, 100), Right, true},
		{"centered", geom.Rect(760, 40, 400, 100), None, false},
		{"half width off left", geom.Rect(200, 40, 400, 100), None, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := Detect(tt.window, screen)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, e)
		})
	}
}

func TestDetectOffsetScreen(t *testing.T) {
	second := geom.Rect(1920, 0, 2560, 1440)

	e, ok := Detect(geom.Rect(4080, 10, 400, 80), second)
	require.True(t, ok)
	assert.Equal(t, Right, e)

	e, ok = Detect(geom.Rect(1930, 10, 400, 80), second)
	require.True(t, ok)
	assert.Equal(t, Left, e)
}

func TestDetectByCenter(t *testing.T) {
	tests := []struct {
		name     string
		window   geom.RectF
		expected Edge
	}{
		{"left half", geom.Rect(100, 400, 400, 100), Left},
		{"right half", geom.Rect(1400, 400, 400, 100), Right},
		{"straddling top", geom.Rect(760, 20, 400, 100), Top},
		{"straddling bottom", geom.Rect(760, 900, 400, 100), Bottom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectByCenter(tt.window, screen))
		})
	}
}

func TestPolicy(t *testing.T) {
	centered := geom.Rect(760, 20, 400, 100)

	_, ok := PolicyEdgeDistance.Detect(centered, screen)
	assert.False(t, ok)

	e, ok := PolicyCenter.Detect(centered, screen)
	assert.True(t, ok)
	assert.Equal(t, Top, e)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyEdgeDistance, p)

	p, err = ParsePolicy("center")
	require.NoError(t, err)
	assert.Equal(t, PolicyCenter, p)

	_, err = ParsePolicy("diagonal")
	assert.Error(t, err)
}

func TestEdgeString(t *testing.T) {
	assert.Equal(t, "left", Left.String())
	assert.Equal(t, "bottom", Bottom.String())
	assert.Equal(t, "none", Edge(42).String())
}
