package bench

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleResult() Result {
	return Result{
		TimestampISO: "2025-09-10T11:19:27Z",
		ImplName:     "variant4",
		Scenario:     "WRITE_RANDOM",
		N:            10000,
		Seed:         42,
		RepID:        2,
		OpsInRun:     10000,
		TotalTimeNs:  123456,
		NsPerOp:      12.3456,
		InitTimeNs:   0,
		Relocations:  17,
		Conversions:  33,
	}
}

func TestResultRecord(t *testing.T) {
	rec := sampleResult().Record()
	require.Len(t, rec, len(Header))
	require.Equal(t, []string{
		"2025-09-10T11:19:27Z", "variant4", "WRITE_RANDOM", "10000", "42", "2",
		"10000", "123456", "12.3456", "0", "17", "33",
	}, rec)
}

func TestCSVWriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewCSVWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, w.Append(sampleResult()))
	require.NoError(t, w.Append(sampleResult()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, Header, rows[0])
	require.Equal(t, sampleResult().Record(), rows[1])
	require.Equal(t, sampleResult().Record(), rows[2])
}

func TestNowISOFormat(t *testing.T) {
	ts := NowISO()
	require.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`, ts)
}
