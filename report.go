package gributil

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"github.com/sdifrance/gributil/table"
)

const reportRule = "***********************************************************"

// Summary tabulates the attributes of a message sequence. Rows are the
// attributes of the first message, columns the messages. Array valued
// attributes and attributes a message cannot provide are recorded as nil.
type Summary struct {
	// Path is the absolute path of the summarized file, if any.
	Path string

	keys    []string
	cells   [][]interface{} // [row][message]
	rowOf   map[string]int
	common  []string
	varying []string
	layers  int
}

// DatasetCount is the number of messages carrying one parameter name.
type DatasetCount struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// Summarize builds the summary of msgs. It fails only when msgs is empty.
func Summarize(msgs []Message) (*Summary, error) {
	if len(msgs) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "no GRIB messages to summarize")
	}

	s := &Summary{
		keys:   msgs[0].Keys(),
		rowOf:  make(map[string]int),
		layers: len(msgs),
	}
	s.cells = make([][]interface{}, len(s.keys))
	for r, key := range s.keys {
		s.rowOf[key] = r
		row := make([]interface{}, len(msgs))
		for c, m := range msgs {
			row[c] = cell(m, key)
		}
		s.cells[r] = row

		if distinct(row) == 1 {
			s.common = append(s.common, key)
		} else {
			s.varying = append(s.varying, key)
		}
	}
	slices.Sort(s.common)

	glog.V(1).Infof("summarized %d messages: %d common and %d varying attributes", s.layers, len(s.common), len(s.varying))
	return s, nil
}

// distinct counts the distinct values of row, nil included.
func distinct(row []interface{}) int {
	var seen []interface{}
	for _, v := range row {
		found := false
		for _, s := range seen {
			if equalValues(s, v) {
				found = true
				break
			}
		}
		if !found {
			seen = append(seen, v)
		}
	}
	return len(seen)
}

// Layers returns the number of summarized messages.
func (s *Summary) Layers() int {
	return s.layers
}

// Keys returns the attribute rows in the order of the first message.
func (s *Summary) Keys() []string {
	return s.keys
}

// Common returns, sorted, the attributes with the same value in every message.
func (s *Summary) Common() []string {
	return s.common
}

// Varying returns the attributes that differ between messages, in row order.
func (s *Summary) Varying() []string {
	return s.varying
}

// IsCommon reports whether key is one of the common attributes.
func (s *Summary) IsCommon(key string) bool {
	return slices.Contains(s.common, key)
}

// Value returns the value of key for the message at index layer, or nil.
func (s *Summary) Value(key string, layer int) interface{} {
	r, ok := s.rowOf[key]
	if !ok || layer < 0 || layer >= s.layers {
		return nil
	}
	return s.cells[r][layer]
}

func (s *Summary) has(key string) bool {
	_, ok := s.rowOf[key]
	return ok
}

// Datasets counts the messages per parameter name, in order of first
// appearance. It returns nil when the messages have no name attribute.
func (s *Summary) Datasets() []DatasetCount {
	if !s.has("name") {
		return nil
	}
	var out []DatasetCount
	index := make(map[string]int)
	for layer := 0; layer < s.layers; layer++ {
		name := table.FormatValue(s.Value("name", layer))
		if i, ok := index[name]; ok {
			out[i].Count++
			continue
		}
		index[name] = len(out)
		out = append(out, DatasetCount{Name: name, Count: 1})
	}
	return out
}

// errWriter remembers the first write error so that a sequence of prints
// needs a single check.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) render(t *table.Table) {
	if ew.err != nil {
		return
	}
	ew.err = t.Render(ew.w)
}

// WriteText writes the human-readable report. Tables are never elided: the
// display limits are lifted for the duration of the call.
func (s *Summary) WriteText(w io.Writer) error {
	defer table.Override(table.Unlimited)()

	ew := &errWriter{w: w}
	ew.printf("GRIB FILE DESCRIPTION:\n%s\n\n", reportRule)
	if s.Path != "" {
		ew.printf("Grib name: %s\n", s.Path)
	}
	if s.IsCommon("dataDate") && s.IsCommon("dataTime") {
		ew.printf("Grib date: %s %s\n", table.FormatValue(s.Value("dataDate", 0)), table.FormatValue(s.Value("dataTime", 0)))
	}
	if s.has("Nx") && s.has("Ny") {
		ew.printf("Layer size (X x Y): %sx%s\n", table.FormatValue(s.Value("Nx", 0)), table.FormatValue(s.Value("Ny", 0)))
	}
	ew.printf("Number of layers: %d\n", s.layers)
	if datasets := s.Datasets(); datasets != nil {
		ew.printf("Available datasets:\n")
		for _, d := range datasets {
			ew.printf("\t%s (%d)\n", d.Name, d.Count)
		}
	}

	ew.printf("\n\nGENERAL GRIB DATA OVERVIEW:\n\n")
	ew.render(s.commonTable())

	ew.printf("\n\nLAYER-SPECIFIC DATA OVERVIEW:\n\n")
	ew.render(s.varyingTable())

	ew.printf("\n%s\n\n\n", reportRule)
	return ew.err
}

// commonTable lists each common attribute with its value in the first message.
func (s *Summary) commonTable() *table.Table {
	t := table.New("0")
	for _, key := range s.common {
		t.Append(key, s.Value(key, 0))
	}
	return t
}

// varyingTable has one row per message and one column per varying attribute.
func (s *Summary) varyingTable() *table.Table {
	t := table.New(s.varying...)
	for layer := 0; layer < s.layers; layer++ {
		cells := make([]interface{}, len(s.varying))
		for i, key := range s.varying {
			cells[i] = s.Value(key, layer)
		}
		t.Append(strconv.Itoa(layer), cells...)
	}
	return t
}

type summaryDocument struct {
	Path     string                   `yaml:"path,omitempty"`
	Layers   int                      `yaml:"layers"`
	Datasets []DatasetCount           `yaml:"datasets,omitempty"`
	Common   map[string]interface{}   `yaml:"common"`
	PerLayer []map[string]interface{} `yaml:"perLayer"`
}

// WriteYAML writes the summary as a YAML document.
func (s *Summary) WriteYAML(w io.Writer) error {
	doc := summaryDocument{
		Path:     s.Path,
		Layers:   s.layers,
		Datasets: s.Datasets(),
		Common:   make(map[string]interface{}, len(s.common)),
	}
	for _, key := range s.common {
		doc.Common[key] = s.Value(key, 0)
	}
	for layer := 0; layer < s.layers; layer++ {
		row := make(map[string]interface{}, len(s.varying))
		for _, key := range s.varying {
			row[key] = s.Value(key, layer)
		}
		doc.PerLayer = append(doc.PerLayer, row)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "encoding summary")
	}
	return enc.Close()
}

// Report writes the human-readable summary of msgs to w.
func Report(w io.Writer, msgs []Message) error {
	s, err := Summarize(msgs)
	if err != nil {
		return err
	}
	return s.WriteText(w)
}

// ReportFile opens the GRIB file at path and writes its summary to w, headed
// by the file's absolute path.
func ReportFile(w io.Writer, path string) error {
	msgs, err := Open(path)
	if err != nil {
		return err
	}
	s, err := Summarize(msgs)
	if err != nil {
		return err
	}
	if s.Path, err = filepath.Abs(path); err != nil {
		return errors.Wrap(err, "resolving path")
	}
	return s.WriteText(w)
}
