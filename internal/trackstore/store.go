package trackstore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/banshee-data/coasttrack/internal/tracking"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrTrackNotFound is returned when no track matches the run and id.
var ErrTrackNotFound = errors.New("track not found")

// Store is a SQLite-backed repository of replayed tracks.
type Store struct {
	db *sql.DB
}

// Run is one replay session.
type Run struct {
	RunID            string
	Source           string
	StartedUnixNanos int64
}

// TrackRecord is the persisted summary of one track.
type TrackRecord struct {
	RunID                    string
	TrackID                  int
	ObjectClass              tracking.ObjectClass
	HistoryLength            int
	TrueDetections           int
	ExtrapolationLength      int
	ConsecutiveDetections    int
	MaxConsecutiveDetections int
	MaxDetectionScore        float64
	MaxExtrapolationLength   int
	ExtrapolationBudget      int
}

// Open opens (or creates) the database at path and applies migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open track store: %w", err)
	}
	// A single connection keeps PRAGMA foreign_keys in effect for every query.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// StartRun records a new replay session and returns its id.
func (s *Store) StartRun(source string) (string, error) {
	runID := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO track_runs (run_id, source, started_unix_nanos) VALUES (?, ?, ?)`,
		runID, source, time.Now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return runID, nil
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns() ([]Run, error) {
	rows, err := s.db.Query(`SELECT run_id, source, started_unix_nanos FROM track_runs ORDER BY started_unix_nanos DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.Source, &r.StartedUnixNanos); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// SaveTrack upserts the track summary and replaces its stored history.
func (s *Store) SaveTrack(runID string, snap tracking.TrackSnapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save track: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO tracks (
			run_id, track_id, object_class, history_length, true_detections,
			extrapolation_length, consecutive_detections, max_consecutive_detections,
			max_detection_score, max_extrapolation_length, extrapolation_budget
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, track_id) DO UPDATE SET
			object_class = excluded.object_class,
			history_length = excluded.history_length,
			true_detections = excluded.true_detections,
			extrapolation_length = excluded.extrapolation_length,
			consecutive_detections = excluded.consecutive_detections,
			max_consecutive_detections = excluded.max_consecutive_detections,
			max_detection_score = excluded.max_detection_score,
			max_extrapolation_length = excluded.max_extrapolation_length,
			extrapolation_budget = excluded.extrapolation_budget
	`,
		runID,
		snap.ID,
		int(snap.ObjectClass),
		len(snap.Detections),
		snap.NumTrueDetections,
		snap.NumExtrapolatedDetections,
		snap.NumConsecutiveDetections,
		snap.MaxConsecutiveDetections,
		snap.MaxDetectionScore,
		snap.MaxExtrapolationLength,
		snap.ExtrapolationBudget,
	)
	if err != nil {
		return fmt.Errorf("upsert track %d: %w", snap.ID, err)
	}

	if _, err := tx.Exec(`DELETE FROM track_detections WHERE run_id = ? AND track_id = ?`, runID, snap.ID); err != nil {
		return fmt.Errorf("clear detections for track %d: %w", snap.ID, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO track_detections (
			run_id, track_id, seq, object_class, min_x, min_y, max_x, max_y, score, extrapolated
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare detection insert: %w", err)
	}
	defer stmt.Close()

	for seq, d := range snap.Detections {
		b := d.BoundingBox
		if _, err := stmt.Exec(runID, snap.ID, seq, int(d.ObjectClass),
			b.Min.X, b.Min.Y, b.Max.X, b.Max.Y, d.Score, d.Extrapolated); err != nil {
			return fmt.Errorf("insert detection %d for track %d: %w", seq, snap.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit track %d: %w", snap.ID, err)
	}
	return nil
}

const trackColumns = `run_id, track_id, object_class, history_length, true_detections,
	extrapolation_length, consecutive_detections, max_consecutive_detections,
	max_detection_score, max_extrapolation_length, extrapolation_budget`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrack(row rowScanner) (TrackRecord, error) {
	var r TrackRecord
	var class int
	err := row.Scan(
		&r.RunID, &r.TrackID, &class, &r.HistoryLength, &r.TrueDetections,
		&r.ExtrapolationLength, &r.ConsecutiveDetections, &r.MaxConsecutiveDetections,
		&r.MaxDetectionScore, &r.MaxExtrapolationLength, &r.ExtrapolationBudget,
	)
	r.ObjectClass = tracking.ObjectClass(class)
	return r, err
}

// GetTrack returns the stored summary of one track.
func (s *Store) GetTrack(runID string, trackID int) (*TrackRecord, error) {
	row := s.db.QueryRow(`SELECT `+trackColumns+` FROM tracks WHERE run_id = ? AND track_id = ?`, runID, trackID)
	r, err := scanTrack(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s track %d: %w", runID, trackID, ErrTrackNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get track %d: %w", trackID, err)
	}
	return &r, nil
}

// ListTracks returns all tracks of a run ordered by id.
func (s *Store) ListTracks(runID string) ([]TrackRecord, error) {
	rows, err := s.db.Query(`SELECT `+trackColumns+` FROM tracks WHERE run_id = ? ORDER BY track_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query tracks: %w", err)
	}
	defer rows.Close()

	var out []TrackRecord
	for rows.Next() {
		r, err := scanTrack(rows)
		if err != nil {
			return nil, fmt.Errorf("scan track: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetDetections returns the stored history of one track, oldest first.
func (s *Store) GetDetections(runID string, trackID int) ([]tracking.Detection, error) {
	rows, err := s.db.Query(`
		SELECT object_class, min_x, min_y, max_x, max_y, score, extrapolated
		FROM track_detections
		WHERE run_id = ? AND track_id = ?
		ORDER BY seq
	`, runID, trackID)
	if err != nil {
		return nil, fmt.Errorf("query detections: %w", err)
	}
	defer rows.Close()

	var out []tracking.Detection
	for rows.Next() {
		var d tracking.Detection
		var class int
		b := &d.BoundingBox
		if err := rows.Scan(&class, &b.Min.X, &b.Min.Y, &b.Max.X, &b.Max.Y, &d.Score, &d.Extrapolated); err != nil {
			return nil, fmt.Errorf("scan detection: %w", err)
		}
		d.ObjectClass = tracking.ObjectClass(class)
		out = append(out, d)
	}
	return out, rows.Err()
}
