package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

// CSVSource loads the cleaned product table from a CSV file with a header row.
type CSVSource struct {
	path string
}

// NewCSVSource returns a CSVSource reading from path. The file is opened lazily by Load.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Load reads the whole file into a dataframe. A missing file or a file without
// data rows yields ErrNoData.
func (c *CSVSource) Load() (dataframe.DataFrame, error) {
	f, err := os.Open(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return dataframe.DataFrame{}, fmt.Errorf("csv: %q: %w", c.path, ErrNoData)
	}
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("csv: open %q: %w", c.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("csv: read %q: %w", c.path, err)
	}
	if len(records) < 2 {
		return dataframe.DataFrame{}, fmt.Errorf("csv: %q has no data rows: %w", c.path, ErrNoData)
	}

	header := records[0]
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	width := len(header)
	for i := 1; i < len(records); i++ {
		records[i] = padRecord(records[i], width)
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(nanValues),
		dataframe.WithTypes(columnTypes()),
	)
	return normaliseFrame(df)
}

// Close is a no-op; the file is closed at the end of Load.
func (c *CSVSource) Close() error { return nil }

// padRecord trims or pads a row to the header width so ragged exports still load.
func padRecord(rec []string, width int) []string {
	if len(rec) == width {
		return rec
	}
	if len(rec) > width {
		return rec[:width]
	}
	out := make([]string, width)
	copy(out, rec)
	return out
}
