package grib1

import (
	"errors"
	"math"
	"testing"

	"github.com/sdifrance/gributil/grib1/grib1test"
)

func Test_parse2ByteInt(t *testing.T) {
	tests := []struct {
		name string
		arg  []byte
		want int32
	}{
		{
			"positive number",
			[]byte{0, 16},
			16,
		},
		{
			"negative 3",
			[]byte{0b10000001, 3},
			-3,
		},
		{
			"negative 257",
			[]byte{0b10000001, 1},
			-(1 + 256),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parse2ByteInt(tt.arg[0], tt.arg[1]); got != tt.want {
				t.Errorf("parse2ByteInt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_parse3ByteInt(t *testing.T) {
	tests := []struct {
		name string
		arg  []byte
		want int32
	}{
		{"zero", []byte{0, 0, 0}, 0},
		{"50 degrees", []byte{0, 0xc3, 0x50}, 50000},
		{"minus 90 degrees", []byte{0x81, 0x5f, 0x90}, -90000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parse3ByteInt(tt.arg[0], tt.arg[1], tt.arg[2]); got != tt.want {
				t.Errorf("parse3ByteInt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_unpackBits(t *testing.T) {
	tests := []struct {
		name         string
		data         []byte
		bitsPerValue int
		count        int
		want         []uint64
	}{
		{"bytes", []byte{1, 2, 3}, 8, 3, []uint64{1, 2, 3}},
		{"nibbles", []byte{0x12, 0x30}, 4, 3, []uint64{1, 2, 3}},
		{"12 bits", []byte{0xab, 0xcd, 0xef}, 12, 2, []uint64{0xabc, 0xdef}},
		{"3 bits across bytes", []byte{0b101_011_00, 0b1_0000000}, 3, 3, []uint64{5, 3, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := unpackBits(tt.data, tt.bitsPerValue, tt.count)
			if err != nil {
				t.Fatalf("unpackBits() error = %v", err)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("unpackBits()[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}

	if _, err := unpackBits([]byte{1}, 16, 1); err == nil {
		t.Errorf("unpackBits() with short data returned no error")
	}
}

func TestMalformedMessages(t *testing.T) {
	surplus := grib1test.Defaults()
	surplus.Values = append(surplus.Values, 276)

	short := grib1test.Defaults()
	short.Values = short.Values[:5]

	empty := grib1test.Defaults()
	empty.Values = nil

	valid := grib1test.Defaults().Bytes()

	tests := []struct {
		name string
		data []byte
		// wantReadErr is set when Read itself must fail; otherwise Read
		// succeeds and decoding the values must fail.
		wantReadErr bool
	}{
		{"surplus packed values", surplus.Bytes(), false},
		{"short packed values", short.Bytes(), false},
		{"no packed values", empty.Bytes(), false},
		{"truncated record", valid[:len(valid)-6], true},
		{"bad end marker", append(append([]byte{}, valid[:len(valid)-4]...), []byte("7677")...), true},
		{"trailing garbage after record", append(append([]byte{}, valid...), 'x'), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs, err := Read(tt.data)
			if tt.wantReadErr {
				if err == nil {
					t.Fatalf("Read() returned no error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if _, err := msgs[0].Values(); err == nil {
				t.Errorf("Values() returned no error")
			}
			if _, err := msgs[0].Get("values"); err == nil {
				t.Errorf("Get(%q) returned no error", "values")
			}
		})
	}
}

func TestRead(t *testing.T) {
	first := grib1test.Defaults()
	second := grib1test.Defaults()
	second.IndicatorOfParameter = ParameterID10MeterUWindComponent
	second.P1 = 6

	data := append([]byte{0, 0, 0}, first.Bytes()...)
	data = append(data, second.Bytes()...)
	data = append(data, 0, 0)

	msgs, err := Read(data)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got, want := len(msgs), 2; got != want {
		t.Fatalf("Read() returned %d messages, want %d", got, want)
	}
	if got := msgs[1].ProductDefinition().IndicatorOfParameter(); got != ParameterID10MeterUWindComponent {
		t.Errorf("second message parameter = %d, want %d", got, ParameterID10MeterUWindComponent)
	}
}

func TestRead1Errors(t *testing.T) {
	valid := grib1test.Defaults().Bytes()

	tests := []struct {
		name string
		data []byte
	}{
		{"too short", []byte("GRI")},
		{"bad magic", append([]byte("GRIX"), valid[4:]...)},
		{"edition 2", append(append([]byte{}, valid[:7]...), append([]byte{2}, valid[8:]...)...)},
		{"truncated", valid[:len(valid)-10]},
		{"bad end section", append(append([]byte{}, valid[:len(valid)-4]...), []byte("7776")...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Read1(tt.data); err == nil {
				t.Errorf("Read1() returned no error")
			}
		})
	}
}

func TestMessageGet(t *testing.T) {
	msgs, err := Read(grib1test.Defaults().Bytes())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	m := msgs[0]

	tests := []struct {
		key  string
		want interface{}
	}{
		{"editionNumber", int64(1)},
		{"centre", int64(98)},
		{"shortName", "2t"},
		{"name", "2 metre temperature"},
		{"typeOfLevel", "surface"},
		{"dataDate", int64(20170104)},
		{"dataTime", int64(600)},
		{"stepUnits", int64(UnitOfTimeHour)},
		{"endStep", int64(3)},
		{"stepRange", "3"},
		{"gridType", "regular_ll"},
		{"Nx", int64(3)},
		{"Ny", int64(2)},
		{"latitudeOfFirstGridPointInDegrees", 50.0},
		{"latitudeOfLastGridPointInDegrees", 49.0},
		{"jDirectionIncrementInDegrees", 1.0},
		{"jScansPositively", int64(0)},
		{"earthIsOblate", int64(0)},
		{"integerPointValues", int64(0)},
		{"additionalFlagPresent", int64(0)},
		{"numberOfValues", int64(6)},
		{"bitmapPresent", int64(0)},
		{"minimum", 270.0},
		{"maximum", 275.75},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := m.Get(tt.key)
			if err != nil {
				t.Fatalf("Get(%q) error = %v", tt.key, err)
			}
			if got != tt.want {
				t.Errorf("Get(%q) = %v (%T), want %v (%T)", tt.key, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestMessageGetUnknownKey(t *testing.T) {
	msgs, err := Read(grib1test.Defaults().Bytes())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if _, err := msgs[0].Get("noSuchKey"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Get(noSuchKey) error = %v, want ErrKeyNotFound", err)
	}
	if err := msgs[0].Set("noSuchKey", 1); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Set(noSuchKey) error = %v, want ErrKeyNotFound", err)
	}
}

func TestMessageSet(t *testing.T) {
	msgs, err := Read(grib1test.Defaults().Bytes())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	m := msgs[0]
	if err := m.Set("stepUnits", int64(0)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := m.Get("stepUnits")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != int64(0) {
		t.Errorf("Get(stepUnits) = %v, want 0", got)
	}
	if got, _ := m.Get("unitOfTimeRange"); got != int64(UnitOfTimeHour) {
		t.Errorf("Get(unitOfTimeRange) = %v, want it unchanged", got)
	}
}

func TestMessageKeys(t *testing.T) {
	msgs, err := Read(grib1test.Defaults().Bytes())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	keys := msgs[0].Keys()
	if len(keys) != len(keyCatalog) {
		t.Errorf("Keys() returned %d keys, want all %d", len(keys), len(keyCatalog))
	}
	for _, k := range keys {
		if _, err := msgs[0].Get(k); err != nil {
			t.Errorf("Get(%q) error = %v", k, err)
		}
	}
}

func TestValuesAndLatLons(t *testing.T) {
	msgs, err := Read(grib1test.Defaults().Bytes())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	values, err := msgs[0].Values()
	if err != nil {
		t.Fatalf("Values() error = %v", err)
	}
	want := [][]float64{{270, 271.5, 272}, {273.25, 274, 275.75}}
	for j := range want {
		for i := range want[j] {
			if math.Abs(values[j][i]-want[j][i]) > 1e-9 {
				t.Errorf("values[%d][%d] = %v, want %v", j, i, values[j][i], want[j][i])
			}
		}
	}

	lats, lons, err := msgs[0].LatLons()
	if err != nil {
		t.Fatalf("LatLons() error = %v", err)
	}
	if lats[1][2] != 49 || lons[1][2] != 2 {
		t.Errorf("point [1][2] = (%v, %v), want (49, 2)", lats[1][2], lons[1][2])
	}
	if lats[0][0] != 50 || lons[0][0] != 0 {
		t.Errorf("point [0][0] = (%v, %v), want (50, 0)", lats[0][0], lons[0][0])
	}
}

func TestValuesWithBitmap(t *testing.T) {
	f := grib1test.Defaults()
	f.Missing = []bool{false, true, false, false, false, true}
	msgs, err := Read(f.Bytes())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	m := msgs[0]

	values, err := m.Values()
	if err != nil {
		t.Fatalf("Values() error = %v", err)
	}
	if values[0][1] != MissingValue || values[1][2] != MissingValue {
		t.Errorf("missing points = %v, %v, want %v", values[0][1], values[1][2], MissingValue)
	}
	if math.Abs(values[1][0]-273.25) > 1e-9 {
		t.Errorf("values[1][0] = %v, want 273.25", values[1][0])
	}
	if got, _ := m.Get("numberOfValues"); got != int64(4) {
		t.Errorf("numberOfValues = %v, want 4", got)
	}
	if got, _ := m.Get("maximum"); got != 274.0 {
		t.Errorf("maximum = %v, want 274 (missing points excluded)", got)
	}
}

func TestSteps(t *testing.T) {
	tests := []struct {
		name               string
		timeRangeIndicator uint8
		p1, p2             uint8
		wantStart, wantEnd int64
	}{
		{"forecast", 0, 6, 0, 6, 6},
		{"analysis", 1, 6, 0, 0, 0},
		{"accumulation", 4, 0, 12, 0, 12},
		{"long forecast", 10, 1, 2, 258, 258},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &ProductDefinition{timeRangeIndicator: tt.timeRangeIndicator, p1: tt.p1, p2: tt.p2}
			start, end := p.Steps()
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("Steps() = %d, %d, want %d, %d", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
