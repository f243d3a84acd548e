package gributil

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// simulationLayout is dataDate (YYYYMMDD) followed by dataTime padded to HHMM.
const simulationLayout = "200601021504"

// SimulationTime returns the time the model run producing m was initialized,
// from its dataDate and dataTime attributes, in UTC.
func SimulationTime(m Message) (time.Time, error) {
	date, err := intAttribute(m, "dataDate")
	if err != nil {
		return time.Time{}, err
	}
	tod, err := intAttribute(m, "dataTime")
	if err != nil {
		return time.Time{}, err
	}

	stamp := fmt.Sprintf("%d%04d", date, tod)
	t, err := time.Parse(simulationLayout, stamp)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrInvalidArgument, "dataDate %d and dataTime %d do not form a time: %v", date, tod, err)
	}
	return t, nil
}

// ValidityTime returns the time the values of m are valid for: the
// simulation time plus endStep minutes.
func ValidityTime(m Message) (time.Time, error) {
	sim, err := SimulationTime(m)
	if err != nil {
		return time.Time{}, err
	}
	step, err := intAttribute(m, "endStep")
	if err != nil {
		return time.Time{}, err
	}
	return sim.Add(time.Duration(step) * time.Minute), nil
}

func intAttribute(m Message, key string) (int64, error) {
	v, err := m.Get(key)
	if err != nil {
		return 0, &MissingAttributeError{Key: key, Err: err}
	}
	i, ok := asInt64(v)
	if !ok {
		return 0, errors.Wrapf(ErrInvalidArgument, "attribute %q is %v (%T), not an integer", key, v, v)
	}
	return i, nil
}
