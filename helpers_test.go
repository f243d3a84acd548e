package gributil

import (
	"fmt"

	"github.com/pkg/errors"
)

// fakeMessage is an in-memory Message. Keys are returned in the order they
// were given.
type fakeMessage struct {
	keys   []string
	attrs  map[string]interface{}
	values [][]float64
	lats   [][]float64
	lons   [][]float64
}

var errFakeMissing = errors.New("no such key")

// newFake builds a message from alternating key, value arguments.
func newFake(kv ...interface{}) *fakeMessage {
	m := &fakeMessage{attrs: make(map[string]interface{})}
	for i := 0; i+1 < len(kv); i += 2 {
		key := kv[i].(string)
		m.keys = append(m.keys, key)
		m.attrs[key] = kv[i+1]
	}
	return m
}

func (m *fakeMessage) Keys() []string { return m.keys }

func (m *fakeMessage) Get(key string) (interface{}, error) {
	v, ok := m.attrs[key]
	if !ok {
		return nil, errors.Wrapf(errFakeMissing, "%q", key)
	}
	if err, ok := v.(error); ok {
		return nil, err
	}
	return v, nil
}

func (m *fakeMessage) Values() ([][]float64, error) {
	if m.values == nil {
		return nil, fmt.Errorf("no values")
	}
	out := make([][]float64, len(m.values))
	for i, row := range m.values {
		out[i] = append([]float64(nil), row...)
	}
	return out, nil
}

func (m *fakeMessage) LatLons() ([][]float64, [][]float64, error) {
	if m.lats == nil {
		return nil, nil, fmt.Errorf("no coordinates")
	}
	return m.lats, m.lons, nil
}

func messages(ms ...*fakeMessage) []Message {
	out := make([]Message, len(ms))
	for i, m := range ms {
		out[i] = m
	}
	return out
}

// forecastLayers returns three surface fields of one model run.
func forecastLayers() []Message {
	return messages(
		newFake("Nx", int64(100), "Ny", int64(50), "dataDate", int64(20170104), "dataTime", int64(600),
			"name", "t2m", "shortName", "2t", "endStep", int64(0), "values", []float64{1, 2}),
		newFake("Nx", int64(100), "Ny", int64(50), "dataDate", int64(20170104), "dataTime", int64(600),
			"name", "u10", "shortName", "10u", "endStep", int64(180), "values", []float64{3, 4}),
		newFake("Nx", int64(100), "Ny", int64(50), "dataDate", int64(20170104), "dataTime", int64(600),
			"name", "v10", "shortName", "10v", "endStep", int64(180), "values", []float64{5, 6}),
	)
}
