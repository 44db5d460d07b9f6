package harness

import (
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeader = []string{"Threads", "MeanSeq", "StdSeq", "MeanPar", "StdPar", "Speedup", "Efficiency"}

// WriteCSV writes rows with four decimals for times and two for ratios.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.Workers),
			strconv.FormatFloat(r.MeanSeq, 'f', 4, 64),
			strconv.FormatFloat(r.StdSeq, 'f', 4, 64),
			strconv.FormatFloat(r.MeanPar, 'f', 4, 64),
			strconv.FormatFloat(r.StdPar, 'f', 4, 64),
			strconv.FormatFloat(r.Speedup, 'f', 2, 64),
			strconv.FormatFloat(r.Efficiency, 'f', 2, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
