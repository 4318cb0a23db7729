// Package replay loads 1-minute bar files and feeds them through the bar store
// in timestamp order.
//
// Rows use the compact OHLCV layout of the bar downloaders: t is the bar start
// in epoch milliseconds.
//
//	[{"t":1741598100000,"o":100,"h":101,"l":99.5,"c":100.5,"v":1200}, ...]
package replay

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/omupade20/prop8/internal/types"
	"github.com/omupade20/prop8/pkg/errors"
	"github.com/parquet-go/parquet-go"
)

// Format is a bar file encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatParquet Format = "parquet"
)

// Row is one bar as stored on disk.
type Row struct {
	Timestamp int64   `json:"t" parquet:"t"`
	Open      float64 `json:"o" parquet:"o"`
	High      float64 `json:"h" parquet:"h"`
	Low       float64 `json:"l" parquet:"l"`
	Close     float64 `json:"c" parquet:"c"`
	Volume    float64 `json:"v" parquet:"v"`
}

// Bar converts the row.
func (r Row) Bar() types.Bar {
	return types.Bar{
		Timestamp: time.UnixMilli(r.Timestamp).UTC(),
		Open:      r.Open,
		High:      r.High,
		Low:       r.Low,
		Close:     r.Close,
		Volume:    r.Volume,
	}
}

// FromBar converts a bar to its on-disk row.
func FromBar(b types.Bar) Row {
	return Row{
		Timestamp: b.Timestamp.UnixMilli(),
		Open:      b.Open,
		High:      b.High,
		Low:       b.Low,
		Close:     b.Close,
		Volume:    b.Volume,
	}
}

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "json":
		return FormatJSON, nil
	case "parquet":
		return FormatParquet, nil
	default:
		return "", errors.Newf(errors.ErrCodeReplayLoadFailed, "unsupported bar file %s (use .json or .parquet)", path)
	}
}

// Load reads the bar file at path. Malformed rows are dropped and the rest are
// returned oldest first; dropped is the number of rows discarded.
func Load(path string) (bars []types.Bar, dropped int, err error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, 0, err
	}

	var rows []Row

	switch format {
	case FormatJSON:
		rows, err = readJSON(path)
	case FormatParquet:
		rows, err = parquet.ReadFile[Row](path)
	}

	if err != nil {
		return nil, 0, errors.Wrapf(errors.ErrCodeReplayLoadFailed, err, "read %s", path)
	}

	bars, dropped = toBars(rows)

	return bars, dropped, nil
}

func readJSON(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rows []Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}

	return rows, nil
}

func writeJSON(path string, rows []Row) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

func toBars(rows []Row) ([]types.Bar, int) {
	bars := make([]types.Bar, 0, len(rows))

	for _, row := range rows {
		if row.Timestamp <= 0 {
			continue
		}

		if bar := row.Bar(); bar.Valid() {
			bars = append(bars, bar)
		}
	}

	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Timestamp.Before(bars[j].Timestamp)
	})

	return bars, len(rows) - len(bars)
}

// Save writes bars to path in the format its extension names.
func Save(path string, bars []types.Bar) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	rows := make([]Row, len(bars))
	for i, b := range bars {
		rows[i] = FromBar(b)
	}

	switch format {
	case FormatJSON:
		err = writeJSON(path, rows)
	case FormatParquet:
		err = parquet.WriteFile(path, rows)
	}

	if err != nil {
		return errors.Wrapf(errors.ErrCodeReplayLoadFailed, err, "write %s", path)
	}

	return nil
}

// Ingestor stores closed bars.
type Ingestor interface {
	IngestBar(instrument string, bar types.Bar) bool
}

// Result counts the outcome of a replay.
type Result struct {
	Stored   int
	Rejected int
}

// Run feeds bars to ingestor one at a time, calling progress after each bar
// when it is not nil. It stops early with ctx.Err() when ctx is done.
func Run(ctx context.Context, ingestor Ingestor, instrument string, bars []types.Bar, progress func()) (Result, error) {
	var result Result

	for _, bar := range bars {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if ingestor.IngestBar(instrument, bar) {
			result.Stored++
		} else {
			result.Rejected++
		}

		if progress != nil {
			progress()
		}
	}

	return result, nil
}
