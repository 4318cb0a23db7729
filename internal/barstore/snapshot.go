package barstore

import (
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/omupade20/prop8/internal/types"
	"github.com/omupade20/prop8/internal/version"
	"github.com/omupade20/prop8/pkg/errors"
	"go.uber.org/zap"
)

type snapshotDocument struct {
	ID          string                    `json:"id"`
	Version     string                    `json:"version"`
	SavedAt     time.Time                 `json:"saved_at"`
	Capacity    int                       `json:"capacity"`
	Instruments map[string]snapshotSeries `json:"instruments"`
}

type snapshotSeries struct {
	Bars        []snapshotBar                 `json:"bars"`
	LastAlert   *time.Time                    `json:"last_alert,omitempty"`
	Dedup       map[types.Direction]time.Time `json:"dedup,omitempty"`
	PausedUntil *time.Time                    `json:"paused_until,omitempty"`
}

// snapshotBar uses pointers so that missing fields can be told from zeros.
type snapshotBar struct {
	Time   *string  `json:"time"`
	Open   *float64 `json:"open"`
	High   *float64 `json:"high"`
	Low    *float64 `json:"low"`
	Close  *float64 `json:"close"`
	Volume *float64 `json:"volume"`
}

func encodeBar(b types.Bar) snapshotBar {
	ts := b.Timestamp.UTC().Format(time.RFC3339)
	open, high, low, closePrice, volume := b.Open, b.High, b.Low, b.Close, b.Volume

	return snapshotBar{Time: &ts, Open: &open, High: &high, Low: &low, Close: &closePrice, Volume: &volume}
}

func (b snapshotBar) decode() (types.Bar, bool) {
	if b.Time == nil || b.Open == nil || b.High == nil || b.Low == nil || b.Close == nil || b.Volume == nil {
		return types.Bar{}, false
	}

	ts, err := time.Parse(time.RFC3339, *b.Time)
	if err != nil {
		return types.Bar{}, false
	}

	bar := types.Bar{
		Timestamp: ts.UTC().Truncate(time.Minute),
		Open:      *b.Open,
		High:      *b.High,
		Low:       *b.Low,
		Close:     *b.Close,
		Volume:    *b.Volume,
	}

	return bar, bar.Valid()
}

// SaveSnapshot writes every series, bounded to the ring capacity, plus the
// alert, dedup and pause state to path, or to the configured snapshot path
// when path is empty. Each series is copied under its own lock; encoding and
// file I/O happen with no lock held. The file is written to a temporary file
// in the same directory and renamed into place.
func (s *BarStore) SaveSnapshot(path string) error {
	if path == "" {
		path = s.snapshotPath
	}

	if path == "" {
		return errors.New(errors.ErrCodeInvalidConfiguration, "no snapshot path configured")
	}

	started := time.Now()
	doc := s.capture()

	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSnapshotWriteFailed, "encode snapshot", err)
	}

	if err := writeFileAtomic(path, data); err != nil {
		return err
	}

	s.metrics.ObserveSnapshot(time.Since(started).Seconds())
	s.log.Info("Snapshot saved",
		zap.String("path", path),
		zap.String("id", doc.ID),
		zap.Int("instruments", len(doc.Instruments)),
	)

	return nil
}

func (s *BarStore) capture() snapshotDocument {
	s.mu.RLock()
	all := make(map[string]*instrumentSeries, len(s.series))
	for inst, series := range s.series {
		all[inst] = series
	}
	s.mu.RUnlock()

	doc := snapshotDocument{
		ID:          uuid.NewString(),
		Version:     version.SnapshotFormat,
		SavedAt:     s.now().UTC(),
		Capacity:    s.capacity,
		Instruments: make(map[string]snapshotSeries, len(all)),
	}

	for inst, series := range all {
		series.mu.Lock()
		bars := series.bars.tail(series.bars.len())
		entry := snapshotSeries{
			Bars:        make([]snapshotBar, 0, len(bars)),
			LastAlert:   timePtr(series.lastAlert),
			Dedup:       make(map[types.Direction]time.Time, len(series.dedup)),
			PausedUntil: timePtr(series.pausedUntil),
		}

		for dir, ts := range series.dedup {
			entry.Dedup[dir] = ts
		}
		series.mu.Unlock()

		for _, b := range bars {
			entry.Bars = append(entry.Bars, encodeBar(b))
		}

		doc.Instruments[inst] = entry
	}

	return doc
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}

	return &t
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(errors.ErrCodeSnapshotWriteFailed, err, "create snapshot directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(errors.ErrCodeSnapshotWriteFailed, err, "create temp file in %s", dir)
	}

	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()

		return errors.Wrapf(errors.ErrCodeSnapshotWriteFailed, err, "write %s", tmpName)
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()

		return errors.Wrapf(errors.ErrCodeSnapshotWriteFailed, err, "sync %s", tmpName)
	}

	if err := tmp.Close(); err != nil {
		cleanup()

		return errors.Wrapf(errors.ErrCodeSnapshotWriteFailed, err, "close %s", tmpName)
	}

	if err := os.Rename(tmpName, path); err != nil {
		cleanup()

		return errors.Wrapf(errors.ErrCodeSnapshotWriteFailed, err, "rename %s to %s", tmpName, path)
	}

	return nil
}

// LoadSnapshot restores the series stored at path, or at the configured path
// when path is empty, into fresh ring buffers. It reports false with no error
// when the file does not exist. Malformed bars are dropped; instruments not
// present in the snapshot are left untouched.
func (s *BarStore) LoadSnapshot(path string) (bool, error) {
	if path == "" {
		path = s.snapshotPath
	}

	if path == "" {
		return false, errors.New(errors.ErrCodeInvalidConfiguration, "no snapshot path configured")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, errors.Wrapf(errors.ErrCodeSnapshotReadFailed, err, "read %s", path)
	}

	var doc snapshotDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return false, errors.Wrapf(errors.ErrCodeSnapshotDecodeFailed, err, "decode %s", path)
	}

	if err := version.CheckSnapshotCompatibility(version.SnapshotFormat, doc.Version); err != nil {
		return false, err
	}

	dropped := 0

	for inst, stored := range doc.Instruments {
		fresh := newInstrumentSeries(s.capacity)

		var last time.Time
		for _, raw := range stored.Bars {
			bar, ok := raw.decode()
			if !ok || (!last.IsZero() && !bar.Timestamp.After(last)) {
				dropped++

				continue
			}

			fresh.bars.push(bar)
			last = bar.Timestamp
		}

		if stored.LastAlert != nil {
			fresh.lastAlert = *stored.LastAlert
		}

		if stored.PausedUntil != nil {
			fresh.pausedUntil = *stored.PausedUntil
		}

		for dir, ts := range stored.Dedup {
			fresh.dedup[dir] = ts
		}

		series := s.seriesFor(inst)
		series.mu.Lock()
		series.bars = fresh.bars
		series.open = fresh.open
		series.lastAlert = fresh.lastAlert
		series.dedup = fresh.dedup
		series.pausedUntil = fresh.pausedUntil
		series.mu.Unlock()
	}

	s.log.Info("Snapshot loaded",
		zap.String("path", path),
		zap.String("id", doc.ID),
		zap.String("version", doc.Version),
		zap.Int("instruments", len(doc.Instruments)),
		zap.Int("dropped_bars", dropped),
	)

	return true, nil
}
