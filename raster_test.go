package gributil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridMessage() *fakeMessage {
	m := newFake("shortName", "tp")
	m.values = [][]float64{{0.0005, 1.5}, {-0.0002, 2}}
	m.lats = [][]float64{{50, 50}, {49, 49}}
	m.lons = [][]float64{{0, 1}, {0, 1}}
	return m
}

func TestToGrid(t *testing.T) {
	m := gridMessage()

	values, lats, lons, err := ToGrid(m)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 1.5}, {0, 2}}, values)
	assert.Equal(t, m.lats, lats)
	assert.Equal(t, m.lons, lons)
	assert.Equal(t, 0.0005, m.values[0][0], "message grid left untouched")
}

func TestToGridOptions(t *testing.T) {
	values, _, _, err := ToGrid(gridMessage(), WithNodataValue(-999))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{-999, 1.5}, {-999, 2}}, values)

	values, _, _, err = ToGrid(gridMessage(), WithNodataThreshold(0))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0.0005, 1.5}, {-0.0002, 2}}, values)

	values, _, _, err = ToGrid(gridMessage(), WithNodataThreshold(1.6))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 0}, {0, 2}}, values)
}

func TestLayersToGrid(t *testing.T) {
	m := gridMessage()
	wantValues, wantLats, wantLons, err := ToGrid(m)
	require.NoError(t, err)

	values, lats, lons, err := LayersToGrid(messages(m))
	require.NoError(t, err)
	assert.Equal(t, wantValues, values)
	assert.Equal(t, wantLats, lats)
	assert.Equal(t, wantLons, lons)

	_, _, _, err = LayersToGrid(messages(gridMessage(), gridMessage()))
	require.ErrorIs(t, err, ErrMultiLayer)
	var multi *MultiLayerError
	require.ErrorAs(t, err, &multi)
	assert.Equal(t, 2, multi.Count)
	assert.Contains(t, err.Error(), "2")

	_, _, _, err = LayersToGrid(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestToGridErrors(t *testing.T) {
	_, _, _, err := ToGrid(newFake("shortName", "tp"))
	assert.Error(t, err)

	m := gridMessage()
	m.lats = nil
	_, _, _, err = ToGrid(m)
	assert.Error(t, err)
}

func TestReplaceBelow(t *testing.T) {
	grid := [][]float64{{-1, 0.5, 0}, {3, -0.4, 0.6}}
	n := ReplaceBelow(grid, 0.5, 7)
	assert.Equal(t, 2, n)
	assert.Equal(t, [][]float64{{-1, 0.5, 7}, {3, 7, 0.6}}, grid)
}
