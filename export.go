package celest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// WriteStates writes one CSV row per sample of the trajectory: the Julian date,
// the Cartesian state and the orbital elements about a body of parameter μ.
// Records are jd, rx, ry, rz, vx, vy, vz, a, e, i, ω, Ω, ν. All angles are in degrees.
func WriteStates(w io.Writer, traj *DiscreteTrajectory[CartesianElements], μ float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"jd", "rx", "ry", "rz", "vx", "vy", "vz", "a", "e", "i", "omega", "Omega", "nu"}); err != nil {
		return err
	}
	var werr error
	traj.Each(func(epoch float64, c CartesianElements) bool {
		k, err := CartesianToKepler(c.R, c.V, μ)
		if err != nil {
			werr = fmt.Errorf("state at %f: %w", epoch, err)
			return false
		}
		record := make([]string, 0, 13)
		record = append(record, formatFloat(epoch))
		for _, val := range c.ToVector() {
			record = append(record, formatFloat(val))
		}
		record = append(record, formatFloat(k.A), formatFloat(k.E), formatFloat(Rad2deg(k.I)), formatFloat(Rad2deg(k.ω)), formatFloat(Rad2deg(k.Ω)), formatFloat(Rad2deg(k.ν)))
		if err := cw.Write(record); err != nil {
			werr = err
			return false
		}
		return true
	})
	if werr != nil {
		return werr
	}
	cw.Flush()
	return cw.Error()
}

// WriteInterpolatedStates writes the trajectory as space separated
// <jd> <x> <y> <z> <vel x> <vel y> <vel z> records, which ReadStates parses.
func WriteInterpolatedStates(w io.Writer, traj *DiscreteTrajectory[CartesianElements]) error {
	if _, err := fmt.Fprintf(w, `# Creation date (UTC): %s
# Records are <jd> <x> <y> <z> <vel x> <vel y> <vel z>
#   Time is a Julian date
#   Position in m
#   Velocity in m/s
`, time.Now().UTC()); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.Comma = ' '
	var werr error
	traj.Each(func(epoch float64, c CartesianElements) bool {
		record := []string{formatFloat(epoch)}
		for _, val := range c.ToVector() {
			record = append(record, formatFloat(val))
		}
		werr = cw.Write(record)
		return werr == nil
	})
	if werr != nil {
		return werr
	}
	cw.Flush()
	return cw.Error()
}

// ReadStates parses the space separated records written by WriteInterpolatedStates.
// Lines starting with # are comments.
func ReadStates(r io.Reader) (*DiscreteTrajectory[CartesianElements], error) {
	traj := NewDiscreteTrajectory[CartesianElements]()
	cr := csv.NewReader(r)
	cr.Comma = ' '
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	for line := 1; ; line++ {
		record, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if len(record) != 7 {
			return nil, fmt.Errorf("record %d: %w", line, &DimensionError{7, len(record)})
		}
		vals := make([]float64, 7)
		for i, field := range record {
			if vals[i], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, fmt.Errorf("record %d: %w", line, err)
			}
		}
		c, err := NewCartesianElementsFromVector(vals[1:])
		if err != nil {
			return nil, err
		}
		traj.AddState(vals[0], c)
	}
	return traj, nil
}

// CreateStatesFile creates the named file in the configured output directory.
// The caller must close it.
func CreateStatesFile(name string) (*os.File, error) {
	return os.Create(filepath.Join(celestConfig().OutputDir, name))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
