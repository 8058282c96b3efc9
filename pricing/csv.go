package pricing

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/signals/num"
	"github.com/rustyeddy/signals/stream"
)

// CSVReader reads candle rows:
//
//	time,open,high,low,close[,volume]
//
// where time is RFC3339, RFC3339Nano or unix seconds. A single header row
// ("time,...") is allowed and empty rows are skipped. Malformed rows are
// errors rather than being skipped.
type CSVReader struct {
	c      io.Closer
	r      *csv.Reader
	header bool
}

func NewCSVReader(r io.Reader) *CSVReader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &CSVReader{r: cr}
}

// OpenCSV opens a candle CSV file. Close releases it.
func OpenCSV(path string) (*CSVReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := NewCSVReader(f)
	r.c = f
	return r, nil
}

func (r *CSVReader) Close() error {
	if r.c != nil {
		return r.c.Close()
	}
	return nil
}

// Next returns the next candle, ok=false at end of input.
func (r *CSVReader) Next() (Candle, bool, error) {
	for {
		row, err := r.r.Read()
		if err == io.EOF {
			return Candle{}, false, nil
		}
		if err != nil {
			return Candle{}, false, err
		}
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}

		if !r.header {
			r.header = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "time") {
				continue
			}
		}

		c, err := parseCandleRow(row)
		if err != nil {
			line, _ := r.r.FieldPos(0)
			return Candle{}, false, fmt.Errorf("line %d: %w", line, err)
		}
		return c, true, nil
	}
}

// Stream exposes the reader as a candle stream. A malformed row fails the
// stream.
func (r *CSVReader) Stream() stream.Stream[Candle] {
	return stream.FromIterator(r.Next)
}

func parseCandleRow(row []string) (Candle, error) {
	if len(row) < 5 {
		return Candle{}, fmt.Errorf("need at least 5 fields (time,open,high,low,close), got %d", len(row))
	}

	t, err := parseTime(strings.TrimSpace(row[0]))
	if err != nil {
		return Candle{}, err
	}

	fields := make([]num.Decimal, 0, 5)
	for i, name := range []string{"open", "high", "low", "close", "volume"} {
		if i+1 >= len(row) {
			fields = append(fields, num.Zero)
			continue
		}
		d, err := num.Parse(strings.TrimSpace(row[i+1]))
		if err != nil {
			return Candle{}, fmt.Errorf("bad %s: %w", name, err)
		}
		fields = append(fields, d)
	}

	return Candle{
		Time:   t,
		Open:   fields[0],
		High:   fields[1],
		Low:    fields[2],
		Close:  fields[3],
		Volume: fields[4],
	}, nil
}

func parseTime(ts string) (time.Time, error) {
	if ts == "" {
		return time.Time{}, fmt.Errorf("empty time")
	}
	if secs, err := strconv.ParseInt(ts, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		t2, err2 := time.Parse(time.RFC3339Nano, ts)
		if err2 != nil {
			return time.Time{}, fmt.Errorf("bad time %q: %w", ts, err)
		}
		t = t2
	}
	return t, nil
}
