// Package gribio contains functionality for reading grib files containing both
// GRIB1 and GRIB2 messages. Only GRIB1 messages are decoded; GRIB2 messages
// are skipped with a warning.
package gribio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/golang/glog"
	"github.com/sdifrance/gributil/grib1"
)

// File holds the messages decoded from a GRIB file, in file order.
type File struct {
	grib1Messages []*grib1.Message
	skipped       int
}

// GRIB1Messages returns the decoded GRIB1 messages in file order.
func (f *File) GRIB1Messages() []*grib1.Message {
	return f.grib1Messages
}

// Skipped returns the number of records that were not decoded, i.e. GRIB2
// messages.
func (f *File) Skipped() int {
	return f.skipped
}

// Open reads and decodes the GRIB file at path.
func Open(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	f, err := ReadFile(fh)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return f, nil
}

// ReadFile decodes every record of a GRIB stream.
func ReadFile(r io.Reader) (*File, error) {
	out := &File{}

	rr := bufio.NewReader(r)
	offset := 0
	for {
		skipCount, err := skipZeros(rr)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, fmt.Errorf("error parsing file: %w", err)
		}
		offset += skipCount

		parseType, messageLen, err := peekParseType(rr)
		if err != nil {
			return nil, fmt.Errorf("error encountered when expecting a GRIB message @ byte offset %d: %w", offset, err)
		}
		glog.V(1).Infof("record @ offset %d is of type %s (%d bytes)", offset, parseType, messageLen)

		switch parseType {
		case parseAsGRIB1:
			recordBytes := make([]byte, int(messageLen))
			if readCount, err := io.ReadFull(rr, recordBytes); err != nil {
				return nil, fmt.Errorf("error while reading message of expected length %d; only read %d bytes: %w", messageLen, readCount, err)
			}
			msg, _, err := grib1.Read1(recordBytes)
			if err != nil {
				return nil, fmt.Errorf("error reading GRIB1 message @ byte offset %d: %w", offset, err)
			}
			out.grib1Messages = append(out.grib1Messages, msg)
		case parseAsGRIB2:
			glog.Warningf("skipping GRIB edition 2 message @ byte offset %d", offset)
			if _, err := io.CopyN(io.Discard, rr, int64(messageLen)); err != nil {
				return nil, fmt.Errorf("error skipping GRIB2 message of length %d: %w", messageLen, err)
			}
			out.skipped++
		}
		offset += int(messageLen)
	}
}

func skipZeros(rr *bufio.Reader) (int, error) {
	skipCount := 0
	for {
		b, err := rr.ReadByte()
		if err != nil {
			return skipCount, err
		}
		if b == 0 {
			skipCount++
			continue
		}
		if err := rr.UnreadByte(); err != nil {
			return skipCount, err
		}
		return skipCount, nil
	}
}

type parseType int

const (
	parseAsInvalidMessage parseType = iota
	parseAsGRIB1
	parseAsGRIB2
)

func (t parseType) String() string {
	switch t {
	case parseAsGRIB1:
		return "GRIB1"
	case parseAsGRIB2:
		return "GRIB2"
	}
	return "invalid"
}

const (
	// Indicator section plus the end section.
	minGRIB1Length = 8 + 4
	minGRIB2Length = 16 + 4
)

// peekParseType inspects the indicator section without consuming it.
func peekParseType(rr *bufio.Reader) (parseType, uint64, error) {
	// GRIB1 only needs 8 bytes, GRIB2 needs 16.
	data, err := rr.Peek(8)
	if err != nil {
		return parseAsInvalidMessage, 0, fmt.Errorf("error while expecting GRIB record: %w", err)
	}

	if got, want := string(data[0:4]), "GRIB"; got != want {
		return parseAsInvalidMessage, 0, fmt.Errorf("first four bytes = %q, want %q", got, want)
	}
	edition := data[7]

	switch edition {
	case 1:
		// https://apps.ecmwf.int/codes/grib/format/grib1/sections/0/
		messageLength := uint64(binary.BigEndian.Uint32([]byte{0, data[4], data[5], data[6]}))
		if messageLength < minGRIB1Length {
			return parseAsInvalidMessage, 0, fmt.Errorf("GRIB1 message length %d is shorter than %d bytes", messageLength, minGRIB1Length)
		}
		return parseAsGRIB1, messageLength, nil
	case 2:
		// https://apps.ecmwf.int/codes/grib/format/grib2/sections/0/
		data, err = rr.Peek(16)
		if err != nil {
			return parseAsInvalidMessage, 0, fmt.Errorf("error while reading GRIB2 indicator section: %w", err)
		}
		messageLength := binary.BigEndian.Uint64(data[8 : 8+8])
		if messageLength < minGRIB2Length || messageLength > math.MaxInt64 {
			return parseAsInvalidMessage, 0, fmt.Errorf("GRIB2 message length %d is outside [%d, %d]", messageLength, uint64(minGRIB2Length), uint64(math.MaxInt64))
		}
		return parseAsGRIB2, messageLength, nil
	default:
		return parseAsInvalidMessage, 0, fmt.Errorf("invalid edition %d, wanted 1 or 2", edition)
	}
}
