package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Header is the CSV column set, fixed for compatibility with existing
// result-analysis tooling.
var Header = []string{
	"timestamp_iso", "impl_name", "scenario", "N", "seed", "rep_id",
	"ops_in_run", "total_time_ns", "ns_per_op", "init_time_ns_if_recorded",
	"relocations_count", "conversions_count",
}

// NowISO returns the current UTC time in the timestamp_iso column format.
func NowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05Z")
}

// Record renders the result as a CSV row matching Header.
func (r Result) Record() []string {
	return []string{
		r.TimestampISO,
		r.ImplName,
		r.Scenario,
		strconv.Itoa(r.N),
		strconv.FormatInt(r.Seed, 10),
		strconv.Itoa(r.RepID),
		strconv.Itoa(r.OpsInRun),
		strconv.FormatInt(r.TotalTimeNs, 10),
		fmt.Sprintf("%.4f", r.NsPerOp),
		strconv.FormatInt(r.InitTimeNs, 10),
		strconv.FormatUint(r.Relocations, 10),
		strconv.FormatUint(r.Conversions, 10),
	}
}

// CSVWriter writes result rows with the fixed header, flushing after
// every row so partial suites still leave usable output.
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter writes the header row and returns a writer for results.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return nil, err
	}
	cw.Flush()
	return &CSVWriter{w: cw}, cw.Error()
}

// Append writes one result row.
func (c *CSVWriter) Append(r Result) error {
	if err := c.w.Write(r.Record()); err != nil {
		return err
	}
	c.w.Flush()
	return c.w.Error()
}
