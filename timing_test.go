package gributil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulationAndValidityTime(t *testing.T) {
	tests := []struct {
		name         string
		date, tod    int64
		step         int64
		wantSim      time.Time
		wantValidity time.Time
	}{
		{"morning run", 20170104, 600, 180,
			time.Date(2017, 1, 4, 6, 0, 0, 0, time.UTC), time.Date(2017, 1, 4, 9, 0, 0, 0, time.UTC)},
		{"midnight run", 20170104, 0, 0,
			time.Date(2017, 1, 4, 0, 0, 0, 0, time.UTC), time.Date(2017, 1, 4, 0, 0, 0, 0, time.UTC)},
		{"minutes and day rollover", 20161231, 2345, 30,
			time.Date(2016, 12, 31, 23, 45, 0, 0, time.UTC), time.Date(2017, 1, 1, 0, 15, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newFake("dataDate", tt.date, "dataTime", tt.tod, "endStep", tt.step)

			sim, err := SimulationTime(m)
			require.NoError(t, err)
			assert.True(t, tt.wantSim.Equal(sim), "simulation time %v, want %v", sim, tt.wantSim)

			valid, err := ValidityTime(m)
			require.NoError(t, err)
			assert.True(t, tt.wantValidity.Equal(valid), "validity time %v, want %v", valid, tt.wantValidity)
			assert.False(t, valid.Before(sim))
		})
	}
}

func TestTimeMissingAttribute(t *testing.T) {
	_, err := SimulationTime(newFake("dataDate", int64(20170104)))
	require.ErrorIs(t, err, ErrMissingAttribute)
	var missing *MissingAttributeError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "dataTime", missing.Key)

	_, err = ValidityTime(newFake("dataDate", int64(20170104), "dataTime", int64(600)))
	assert.ErrorIs(t, err, ErrMissingAttribute)
}

func TestTimeInvalidAttribute(t *testing.T) {
	_, err := SimulationTime(newFake("dataDate", "yesterday", "dataTime", int64(600)))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = SimulationTime(newFake("dataDate", int64(20171304), "dataTime", int64(600)))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
