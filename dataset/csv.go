package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/hupe1980/lloyd/geom"
)

// ReadCSV parses one point per record from r. Each record must have exactly
// two finite numeric fields. A first record in which neither field is
// numeric is treated as a header and skipped. Blank lines are ignored.
func ReadCSV(r io.Reader) ([]geom.Point, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var points []geom.Point
	for first := true; ; first = false {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return points, nil
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read csv: %w", err)
		}

		x, errX := parseField(rec[0])
		y, errY := parseField(rec[1])
		if first && errors.Is(errX, strconv.ErrSyntax) && errors.Is(errY, strconv.ErrSyntax) {
			continue
		}
		if err := errors.Join(errX, errY); err != nil {
			l, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("dataset: line %d: %w", l, err)
		}
		points = append(points, geom.Point{X: x, Y: y})
	}
}

func parseField(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: non-finite value %q", ErrInvalidArgument, s)
	}
	return v, nil
}

// WriteCSV writes points as "x,y" records preceded by an "x,y" header.
// Values use the shortest representation that round-trips exactly.
func WriteCSV(w io.Writer, points []geom.Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y"}); err != nil {
		return err
	}
	rec := make([]string, 2)
	for _, p := range points {
		rec[0] = strconv.FormatFloat(p.X, 'g', -1, 64)
		rec[1] = strconv.FormatFloat(p.Y, 'g', -1, 64)
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLabeledCSV writes points with their cluster labels as "x,y,cluster"
// records. labels must have one entry per point.
func WriteLabeledCSV(w io.Writer, points []geom.Point, labels []int) error {
	if len(labels) != len(points) {
		return fmt.Errorf("%w: %d labels for %d points", ErrInvalidArgument, len(labels), len(points))
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y", "cluster"}); err != nil {
		return err
	}
	rec := make([]string, 3)
	for i, p := range points {
		rec[0] = strconv.FormatFloat(p.X, 'g', -1, 64)
		rec[1] = strconv.FormatFloat(p.Y, 'g', -1, 64)
		rec[2] = strconv.Itoa(labels[i])
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
