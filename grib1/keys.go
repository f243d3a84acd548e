package grib1

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrKeyNotFound is returned for keys no GRIB1 message defines.
	ErrKeyNotFound = errors.New("key not found")
	// ErrKeyUnavailable is returned for keys that exist but cannot be read
	// from this particular message, e.g. grid keys of a message without a
	// grid description.
	ErrKeyUnavailable = errors.New("key unavailable")
)

// requirement states which optional sections a key needs.
type requirement int

const (
	always requirement = iota
	needsGrid
	needsLatLonGrid
)

type keyGetter func(m *Message) (interface{}, error)

type keyDef struct {
	name     string
	requires requirement
	get      keyGetter
}

func constant(v interface{}) keyGetter {
	return func(*Message) (interface{}, error) { return v, nil }
}

func fromProduct(f func(p *ProductDefinition) interface{}) keyGetter {
	return func(m *Message) (interface{}, error) { return f(m.product), nil }
}

func fromLatLon(f func(g *LatLongGrid) interface{}) keyGetter {
	return func(m *Message) (interface{}, error) { return f(m.latLongGrid()), nil }
}

func fromStats(pick func(min, max, mean float64) float64) keyGetter {
	return func(m *Message) (interface{}, error) {
		min, max, mean, err := m.valueStats()
		if err != nil {
			return nil, err
		}
		return pick(min, max, mean), nil
	}
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// keyCatalog lists the keys in the order Keys returns them. Names follow
// ecCodes.
var keyCatalog = []keyDef{
	{"editionNumber", always, constant(int64(1))},
	{"totalLength", always, func(m *Message) (interface{}, error) { return int64(m.ind.messageLength), nil }},
	{"table2Version", always, fromProduct(func(p *ProductDefinition) interface{} { return int64(p.table2Version) })},
	{"centre", always, fromProduct(func(p *ProductDefinition) interface{} { return int64(p.center) })},
	{"subCentre", always, fromProduct(func(p *ProductDefinition) interface{} { return int64(p.subCentre) })},
	{"generatingProcessIdentifier", always, fromProduct(func(p *ProductDefinition) interface{} { return int64(p.generatingProcessIdentifier) })},
	{"gridDefinition", always, fromProduct(func(p *ProductDefinition) interface{} { return int64(p.gridDefinition) })},
	{"indicatorOfParameter", always, fromProduct(func(p *ProductDefinition) interface{} { return int64(p.indicatorOfParameter) })},
	{"shortName", always, fromProduct(func(p *ProductDefinition) interface{} {
		return lookupParameter(p.table2Version, p.indicatorOfParameter).shortName
	})},
	{"name", always, fromProduct(func(p *ProductDefinition) interface{} {
		return lookupParameter(p.table2Version, p.indicatorOfParameter).name
	})},
	{"units", always, fromProduct(func(p *ProductDefinition) interface{} {
		return lookupParameter(p.table2Version, p.indicatorOfParameter).units
	})},
	{"indicatorOfTypeOfLevel", always, fromProduct(func(p *ProductDefinition) interface{} { return int64(p.indicatorOfTypeOfLevel) })},
	{"typeOfLevel", always, fromProduct(func(p *ProductDefinition) interface{} { return typeOfLevelName(p.indicatorOfTypeOfLevel) })},
	{"level", always, fromProduct(func(p *ProductDefinition) interface{} { return int64(p.heightPressureEtcOfLevels) })},
	{"centuryOfReferenceTimeOfData", always, fromProduct(func(p *ProductDefinition) interface{} { return int64(p.centuryOfReferenceTimeOfData) })},
	{"yearOfCentury", always, fromProduct(func(p *ProductDefinition) interface{} { return int64(p.yearOfCentury) })},
	{"month", always, fromProduct(func(p *ProductDefinition) interface{} { return int64(p.month) })},
	{"day", always, fromProduct(func(p *ProductDefinition) interface{} { return int64(p.day) })},
	{"hour", always, fromProduct(func(p *ProductDefinition) interface{} { return int64(p.hour) })},
	{"minute", always, fromProduct(func(p *ProductDefinition) interface{} { return int64(p.minute) })},
	{"dataDate", always, fromProduct(func(p *ProductDefinition) interface{} { return p.DataDate() })},
	{"dataTime", always, fromProduct(func(p *ProductDefinition) interface{} { return p.DataTime() })},
	{"unitOfTimeRange", always, fromProduct(func(p *ProductDefinition) interface{} { return int64(p.unitOfTimeRange) })},
	{"stepUnits", always, fromProduct(func(p *ProductDefinition) interface{} { return int64(p.unitOfTimeRange) })},
	{"P1", always, fromProduct(func(p *ProductDefinition) interface{} { return int64(p.p1) })},
	{"P2", always, fromProduct(func(p *ProductDefinition) interface{} { return int64(p.p2) })},
	{"timeRangeIndicator", always, fromProduct(func(p *ProductDefinition) interface{} { return int64(p.timeRangeIndicator) })},
	{"startStep", always, fromProduct(func(p *ProductDefinition) interface{} {
		start, _ := p.Steps()
		return start
	})},
	{"endStep", always, fromProduct(func(p *ProductDefinition) interface{} {
		_, end := p.Steps()
		return end
	})},
	{"stepRange", always, fromProduct(func(p *ProductDefinition) interface{} {
		start, end := p.Steps()
		if start == end {
			return fmt.Sprint(end)
		}
		return fmt.Sprintf("%d-%d", start, end)
	})},
	{"numberIncludedInAverage", always, fromProduct(func(p *ProductDefinition) interface{} { return int64(p.numberIncludedInAverage) })},
	{"numberMissingFromAveragesOrAccumulations", always, fromProduct(func(p *ProductDefinition) interface{} {
		return int64(p.numberMissingFromAveragesOrAccumulations)
	})},
	{"decimalScaleFactor", always, fromProduct(func(p *ProductDefinition) interface{} { return int64(p.decimalScaleFactor) })},
	{"gridDescriptionSectionPresent", always, fromProduct(func(p *ProductDefinition) interface{} { return boolInt(p.GridDescriptionIncluded()) })},
	{"bitmapPresent", always, fromProduct(func(p *ProductDefinition) interface{} { return boolInt(p.BitmapIncluded()) })},

	{"dataRepresentationType", needsGrid, func(m *Message) (interface{}, error) { return int64(m.grid.dataRepresentationType), nil }},
	{"gridType", needsGrid, func(m *Message) (interface{}, error) { return gridTypeName(m.grid.dataRepresentationType), nil }},

	{"Ni", needsLatLonGrid, fromLatLon(func(g *LatLongGrid) interface{} { return int64(g.Ni()) })},
	{"Nj", needsLatLonGrid, fromLatLon(func(g *LatLongGrid) interface{} { return int64(g.Nj()) })},
	{"Nx", needsLatLonGrid, fromLatLon(func(g *LatLongGrid) interface{} { return int64(g.Ni()) })},
	{"Ny", needsLatLonGrid, fromLatLon(func(g *LatLongGrid) interface{} { return int64(g.Nj()) })},
	{"latitudeOfFirstGridPointInDegrees", needsLatLonGrid, fromLatLon(func(g *LatLongGrid) interface{} { return g.firstGridPoint.Lat().Degrees() })},
	{"longitudeOfFirstGridPointInDegrees", needsLatLonGrid, fromLatLon(func(g *LatLongGrid) interface{} { return g.firstGridPoint.Lng().Degrees() })},
	{"latitudeOfLastGridPointInDegrees", needsLatLonGrid, fromLatLon(func(g *LatLongGrid) interface{} { return g.lastGridPoint.Lat().Degrees() })},
	{"longitudeOfLastGridPointInDegrees", needsLatLonGrid, fromLatLon(func(g *LatLongGrid) interface{} { return g.lastGridPoint.Lng().Degrees() })},
	{"iDirectionIncrementInDegrees", needsLatLonGrid, fromLatLon(func(g *LatLongGrid) interface{} { return absDegrees(g.parallelIncrement) })},
	{"jDirectionIncrementInDegrees", needsLatLonGrid, fromLatLon(func(g *LatLongGrid) interface{} { return absDegrees(g.meridianIncrement) })},
	{"earthIsOblate", needsLatLonGrid, fromLatLon(func(g *LatLongGrid) interface{} { return boolInt(g.resolutionAndComponentFlags.EarthIsOblate()) })},
	{"iScansNegatively", needsLatLonGrid, fromLatLon(func(g *LatLongGrid) interface{} { return boolInt(!g.scanningMode.pointsScanInPlusIDirection()) })},
	{"jScansPositively", needsLatLonGrid, fromLatLon(func(g *LatLongGrid) interface{} { return boolInt(g.scanningMode.pointsScanInPlusJDirection()) })},
	{"jPointsAreConsecutive", needsLatLonGrid, fromLatLon(func(g *LatLongGrid) interface{} {
		return boolInt(!g.scanningMode.adjacentPointsInIDirectionAreConsecutive())
	})},

	{"numberOfDataPoints", always, func(m *Message) (interface{}, error) { return int64(m.numberOfDataPoints()), nil }},
	{"numberOfValues", always, func(m *Message) (interface{}, error) { return int64(m.numberOfPackedValues()), nil }},
	{"packingType", always, func(m *Message) (interface{}, error) {
		switch {
		case m.binary.dataFlag.sphericalHarmonics():
			return "spectral_simple", nil
		case m.binary.dataFlag.complexPacking():
			return "grid_second_order", nil
		}
		return "grid_simple", nil
	}},
	{"integerPointValues", always, func(m *Message) (interface{}, error) { return boolInt(m.binary.dataFlag.integerValues()), nil }},
	{"additionalFlagPresent", always, func(m *Message) (interface{}, error) { return boolInt(m.binary.dataFlag.additionalFlags()), nil }},
	{"bitsPerValue", always, func(m *Message) (interface{}, error) { return int64(m.binary.bitsPerValue), nil }},
	{"binaryScaleFactor", always, func(m *Message) (interface{}, error) { return int64(m.binary.binaryScaleFactor), nil }},
	{"referenceValue", always, func(m *Message) (interface{}, error) { return m.binary.referenceValue, nil }},
	{"missingValue", always, constant(float64(MissingValue))},
	{"maximum", always, fromStats(func(_, max, _ float64) float64 { return max })},
	{"minimum", always, fromStats(func(min, _, _ float64) float64 { return min })},
	{"average", always, fromStats(func(_, _, mean float64) float64 { return mean })},

	{"values", always, func(m *Message) (interface{}, error) { return m.decodeValues() }},
	{"latitudes", needsLatLonGrid, func(m *Message) (interface{}, error) {
		return m.latLongGrid().flatten(func(p LatLng) float64 { return p.Lat().Degrees() }), nil
	}},
	{"longitudes", needsLatLonGrid, func(m *Message) (interface{}, error) {
		return m.latLongGrid().flatten(func(p LatLng) float64 { return p.Lng().Degrees() }), nil
	}},
}

var keysByName = func() map[string]*keyDef {
	out := make(map[string]*keyDef, len(keyCatalog))
	for i := range keyCatalog {
		out[keyCatalog[i].name] = &keyCatalog[i]
	}
	return out
}()

func absDegrees(a QuantizedAngle) float64 {
	if a.milliDegrees < 0 {
		return -a.Degrees()
	}
	return a.Degrees()
}

func (s *LatLongGrid) flatten(f func(LatLng) float64) []float64 {
	points := s.Points()
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = f(p)
	}
	return out
}

func (m *Message) satisfies(r requirement) bool {
	switch r {
	case needsGrid:
		return m.grid != nil
	case needsLatLonGrid:
		return m.latLongGrid() != nil
	}
	return true
}

// Keys returns the names of the attributes this message defines, in a stable
// order. Array valued keys (values, latitudes, longitudes) are included.
func (m *Message) Keys() []string {
	out := make([]string, 0, len(keyCatalog))
	for _, k := range keyCatalog {
		if m.satisfies(k.requires) {
			out = append(out, k.name)
		}
	}
	return out
}

// Get returns the value of a named attribute: an int64, float64, string or,
// for array valued keys, a []float64 in scanning order. Values replaced with
// Set take precedence over the decoded ones.
func (m *Message) Get(key string) (interface{}, error) {
	def, ok := keysByName[key]
	if !ok {
		return nil, errors.Wrapf(ErrKeyNotFound, "%q", key)
	}
	if v, ok := m.overrides[key]; ok {
		return v, nil
	}
	if !m.satisfies(def.requires) {
		return nil, errors.Wrapf(ErrKeyUnavailable, "%q", key)
	}
	v, err := def.get(m)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", key)
	}
	return v, nil
}

// Set replaces the value of a defined attribute for subsequent calls to Get.
// The encoded message is left untouched, and derived attributes are not
// recomputed.
func (m *Message) Set(key string, value interface{}) error {
	if _, ok := keysByName[key]; !ok {
		return errors.Wrapf(ErrKeyNotFound, "%q", key)
	}
	if m.overrides == nil {
		m.overrides = make(map[string]interface{})
	}
	m.overrides[key] = value
	return nil
}
