package repository

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofrs/flock"

	"github.com/okian/raceboard/internal/domain/model"
	"github.com/okian/raceboard/pkg/metrics"
)

// Default lock configuration constants.
const (
	defaultLockTimeout = 5 * time.Second
	defaultLockRetry   = 50 * time.Millisecond
)

// schemaV2 is the versioned column layout. Additive only; the column order
// must stay stable for the lifetime of a deployment's data file.
var schemaV2 = []string{"id", "ts_iso", "round", "team", "scenario", "score", "details"}

// CSVLedger implements Ledger over a flat CSV file. Every append is a
// read-modify-write cycle of the whole file under an exclusive advisory
// lock; the rewritten contents are published with a rename so readers
// never observe a partial row. O(n) per append, accepted in exchange for
// a store that stays auditable with any spreadsheet tool.
type CSVLedger struct {
	dataPath string
	lockPath string

	lockTimeout time.Duration
	lockRetry   time.Duration
	clock       func() time.Time
}

// NewCSVLedger creates a ledger over the given data file. The lock file
// lives next to it with a .lock suffix.
func NewCSVLedger(dataPath string, opts ...Option) *CSVLedger {
	l := &CSVLedger{
		dataPath:    dataPath,
		lockPath:    dataPath + ".lock",
		lockTimeout: defaultLockTimeout,
		lockRetry:   defaultLockRetry,
		clock:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Initialize creates the store with the schema header if it does not exist
// yet. An existing store, whatever its contents, is left untouched.
func (l *CSVLedger) Initialize(_ context.Context) error {
	f, err := os.OpenFile(l.dataPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return fmt.Errorf("create submission store: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(schemaV2); err != nil {
		return fmt.Errorf("write store header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write store header: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync store header: %w", err)
	}
	return nil
}

// Append adds one record under the exclusive cross-process lock.
func (l *CSVLedger) Append(ctx context.Context, rec model.SubmissionRecord) error {
	return l.withLock(ctx, func() error {
		if err := l.Initialize(ctx); err != nil {
			return err
		}
		history, err := l.readFile()
		if err != nil {
			return err
		}

		// Total is always derived from the per-section values, and write
		// order keeps timestamps monotonically non-decreasing.
		rec.Score = rec.TotalFromSections()
		rec.Timestamp = rec.Timestamp.UTC()
		if rec.Timestamp.IsZero() {
			rec.Timestamp = l.clock().UTC()
		}
		if n := len(history); n > 0 && history[n-1].Timestamp.After(rec.Timestamp) {
			rec.Timestamp = history[n-1].Timestamp
		}

		history = append(history, rec)
		return l.publish(history)
	})
}

// ReadAll returns the full history without taking the lock. A missing
// store reads as empty; a malformed one fails with ErrCorruptStore.
func (l *CSVLedger) ReadAll(_ context.Context) ([]model.SubmissionRecord, error) {
	history, err := l.readFile()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return history, nil
}

// ResetAll deletes the whole store and reinitializes the empty schema,
// under the same lock contract as Append.
func (l *CSVLedger) ResetAll(ctx context.Context) error {
	return l.withLock(ctx, func() error {
		if err := os.Remove(l.dataPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove submission store: %w", err)
		}
		return l.Initialize(ctx)
	})
}

// withLock runs fn inside the bounded-wait exclusive lock. The lock is
// released on every exit path, and the OS drops it if the process dies
// mid-critical-section.
func (l *CSVLedger) withLock(ctx context.Context, fn func() error) error {
	lockCtx, cancel := context.WithTimeout(ctx, l.lockTimeout)
	defer cancel()

	waitStart := time.Now()
	fl := flock.New(l.lockPath)
	locked, err := fl.TryLockContext(lockCtx, l.lockRetry)
	metrics.RecordLockWait(time.Since(waitStart).Seconds())
	if err != nil && lockCtx.Err() == nil {
		return fmt.Errorf("acquire store lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("%w: lock not acquired within %s", ErrBusy, l.lockTimeout)
	}
	defer func() {
		_ = fl.Unlock()
	}()

	return fn()
}

// publish rewrites the complete store contents and renames the result over
// the data file so concurrent readers see the old or new snapshot, nothing
// in between.
func (l *CSVLedger) publish(history []model.SubmissionRecord) error {
	dir := filepath.Dir(l.dataPath)
	tmp, err := os.CreateTemp(dir, filepath.Base(l.dataPath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create store temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := csv.NewWriter(tmp)
	if err := w.Write(schemaV2); err != nil {
		tmp.Close()
		return fmt.Errorf("write store header: %w", err)
	}
	for _, rec := range history {
		row, err := encodeRecord(rec)
		if err != nil {
			tmp.Close()
			return err
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("write store row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush store: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close store temp file: %w", err)
	}
	if err := os.Rename(tmpName, l.dataPath); err != nil {
		return fmt.Errorf("publish store: %w", err)
	}
	return nil
}

func (l *CSVLedger) readFile() ([]model.SubmissionRecord, error) {
	f, err := os.Open(l.dataPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(schemaV2)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: missing header", ErrCorruptStore)
	}
	if !headerMatches(rows[0]) {
		return nil, fmt.Errorf("%w: unexpected header %v", ErrCorruptStore, rows[0])
	}

	history := make([]model.SubmissionRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := decodeRecord(row)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrCorruptStore, i+1, err)
		}
		history = append(history, rec)
	}
	return history, nil
}

func headerMatches(header []string) bool {
	if len(header) != len(schemaV2) {
		return false
	}
	for i, col := range schemaV2 {
		if header[i] != col {
			return false
		}
	}
	return true
}

func encodeRecord(rec model.SubmissionRecord) ([]string, error) {
	details, err := json.Marshal(rec.Sections)
	if err != nil {
		return nil, fmt.Errorf("encode section scores: %w", err)
	}
	return []string{
		rec.ID,
		rec.Timestamp.UTC().Format(time.RFC3339Nano),
		strconv.Itoa(rec.Round),
		rec.Team,
		rec.Scenario,
		strconv.Itoa(rec.Score),
		string(details),
	}, nil
}

func decodeRecord(row []string) (model.SubmissionRecord, error) {
	ts, err := time.Parse(time.RFC3339Nano, row[1])
	if err != nil {
		return model.SubmissionRecord{}, fmt.Errorf("bad timestamp %q", row[1])
	}
	round, err := strconv.Atoi(row[2])
	if err != nil || round < 1 {
		return model.SubmissionRecord{}, fmt.Errorf("bad round %q", row[2])
	}
	score, err := strconv.Atoi(row[5])
	if err != nil {
		return model.SubmissionRecord{}, fmt.Errorf("bad score %q", row[5])
	}
	var sections []model.SectionScore
	if err := json.Unmarshal([]byte(row[6]), &sections); err != nil {
		return model.SubmissionRecord{}, fmt.Errorf("bad section detail %q", row[6])
	}

	rec := model.SubmissionRecord{
		ID:        row[0],
		Timestamp: ts.UTC(),
		Round:     round,
		Team:      row[3],
		Scenario:  row[4],
		Sections:  sections,
		Score:     score,
	}
	if rec.TotalFromSections() != score {
		return model.SubmissionRecord{}, fmt.Errorf("total %d disagrees with section detail", score)
	}
	return rec, nil
}
