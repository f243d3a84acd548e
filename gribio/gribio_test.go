package gribio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io/fs"
	"math"
	"testing"

	"github.com/sdifrance/gributil/grib1/grib1test"
)

// grib2Record returns a minimal GRIB2 record: indicator section, padding and
// the end section.
func grib2Record() []byte {
	rec := make([]byte, 24)
	copy(rec, "GRIB")
	rec[7] = 2
	binary.BigEndian.PutUint64(rec[8:16], uint64(len(rec)))
	copy(rec[20:], "7777")
	return rec
}

// grib2Header returns a GRIB2 indicator section claiming length n.
func grib2Header(n uint64) []byte {
	rec := make([]byte, 16)
	copy(rec, "GRIB")
	rec[7] = 2
	binary.BigEndian.PutUint64(rec[8:16], n)
	return rec
}

func TestReadFile(t *testing.T) {
	f1 := grib1test.Defaults()
	f2 := grib1test.Defaults()
	f2.P1 = 6

	tests := []struct {
		name        string
		data        []byte
		wantGRIB1   int
		wantSkipped int
	}{
		{"empty", nil, 0, 0},
		{"single", f1.Bytes(), 1, 0},
		{"two with padding", append(append(f1.Bytes(), 0, 0, 0), f2.Bytes()...), 2, 0},
		{"mixed editions", append(append(f1.Bytes(), grib2Record()...), f2.Bytes()...), 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(bytes.NewReader(tt.data))
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}
			if n := len(got.GRIB1Messages()); n != tt.wantGRIB1 {
				t.Errorf("ReadFile() decoded %d GRIB1 messages, want %d", n, tt.wantGRIB1)
			}
			if got.Skipped() != tt.wantSkipped {
				t.Errorf("ReadFile() skipped %d records, want %d", got.Skipped(), tt.wantSkipped)
			}
		})
	}
}

func TestReadFileErrors(t *testing.T) {
	valid := grib1test.Defaults().Bytes()
	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte("not a grib file")},
		{"truncated", valid[:len(valid)/2]},
		{"edition 3", append([]byte("GRIB\x00\x00\x10\x03"), make([]byte, 8)...)},
		{"GRIB1 length shorter than indicator", append([]byte("GRIB\x00\x00\x04\x01"), make([]byte, 8)...)},
		{"GRIB2 length overflows int64", grib2Header(math.MaxUint64)},
		{"GRIB2 length beyond stream", grib2Header(1 << 20)},
		{"GRIB2 length shorter than indicator", grib2Header(8)},
		{"GRIB2 after valid GRIB1", append(append([]byte{}, valid...), grib2Header(math.MaxInt64+1)...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadFile(bytes.NewReader(tt.data)); err == nil {
				t.Errorf("ReadFile() returned no error")
			}
		})
	}
}

func TestOpen(t *testing.T) {
	path := grib1test.WriteFile(t, grib1test.Defaults(), grib1test.Defaults())
	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if n := len(f.GRIB1Messages()); n != 2 {
		t.Errorf("Open() decoded %d messages, want 2", n)
	}

	if _, err := Open(path + ".missing"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Open() of missing file error = %v, want fs.ErrNotExist", err)
	}
}
