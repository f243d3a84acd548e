// Command gribinspect prints a summary of the messages in a GRIB file,
// optionally narrowed by attribute filters, or the grid of a single message.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/sdifrance/gributil"
)

// filterFlags collects repeated -filter arguments.
type filterFlags []string

func (f *filterFlags) String() string {
	return strings.Join(*f, " ")
}

func (f *filterFlags) Set(v string) error {
	*f = append(*f, v)
	return nil
}

var (
	input            = flag.String("input", "", "Path to the input grib file.")
	timestepInterval = flag.Int("timestep_interval", gributil.DefaultTimestepInterval, "Timestep interval of the file, in minutes.")
	format           = flag.String("format", "text", "Report format: text or yaml.")
	grid             = flag.Bool("grid", false, "Describe the grid of the single message left after filtering instead of printing a report.")
	filters          filterFlags
)

func init() {
	flag.Var(&filters, "filter", "Attribute filter of the form key=value or key=v1,v2; may be repeated.")
}

func main() {
	flag.Parse()
	if err := run(context.Background(), os.Stdout); err != nil {
		glog.Exitf("got fatal error: %v", err)
	}
}

func run(_ context.Context, w io.Writer) error {
	if !slices.Contains([]string{"text", "yaml"}, *format) {
		return errors.Errorf("unknown -format %q, want text or yaml", *format)
	}
	filter, err := gributil.ParseFilter(filters)
	if err != nil {
		return err
	}

	msgs, err := gributil.OpenWithInterval(*input, *timestepInterval)
	if err != nil {
		return err
	}
	if len(filter) > 0 {
		msgs = gributil.Filter(msgs, filter)
	}

	if *grid {
		return describeGrid(w, msgs)
	}

	s, err := gributil.Summarize(msgs)
	if err != nil {
		return err
	}
	if s.Path, err = absPath(*input); err != nil {
		return err
	}
	if *format == "yaml" {
		return s.WriteYAML(w)
	}
	return s.WriteText(w)
}

func describeGrid(w io.Writer, msgs []gributil.Message) error {
	m, err := gributil.Single(msgs)
	if err != nil {
		return err
	}
	values, lats, _, err := gributil.ToGrid(m)
	if err != nil {
		return err
	}

	if len(values) == 0 || len(values[0]) == 0 {
		return errors.New("message has an empty grid")
	}

	lo, hi := valueRange(values)
	fmt.Fprintf(w, "Grid shape (rows x columns): %dx%d\n", len(values), len(values[0]))
	fmt.Fprintf(w, "Value range: %g to %g\n", lo, hi)
	fmt.Fprintf(w, "Latitude range: %g to %g\n", lats[0][0], lats[len(lats)-1][0])

	if sim, err := gributil.SimulationTime(m); err == nil {
		fmt.Fprintf(w, "Simulation time: %s\n", sim.Format("2006-01-02 15:04 MST"))
	} else {
		glog.Warningf("no simulation time: %v", err)
	}
	valid, err := gributil.ValidityTime(m)
	if err != nil {
		glog.Warningf("no validity time: %v", err)
		return nil
	}
	_, err = fmt.Fprintf(w, "Validity time: %s\n", valid.Format("2006-01-02 15:04 MST"))
	return err
}

func valueRange(values [][]float64) (lo, hi float64) {
	lo, hi = values[0][0], values[0][0]
	for _, row := range values {
		for _, v := range row {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return lo, hi
}

func absPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", errors.Wrap(err, "resolving input path")
	}
	return abs, nil
}
