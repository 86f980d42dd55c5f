// Package project persists sequences to a single-file SQLite project
// database. Rendered frames are never stored; only the description of
// the timeline survives a session.
package project

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/wilbur182/cutroom/internal/timeline"
)

// ErrNoSequence is returned by LoadSequence on a fresh project file.
var ErrNoSequence = errors.New("project: no sequence")

const schema = `
CREATE TABLE IF NOT EXISTS sequences (
	id     INTEGER PRIMARY KEY AUTOINCREMENT,
	name   TEXT NOT NULL,
	fps    INTEGER NOT NULL,
	width  INTEGER NOT NULL,
	height INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS tracks (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	sequence_id INTEGER NOT NULL REFERENCES sequences(id),
	position    INTEGER NOT NULL,
	name        TEXT NOT NULL,
	muted       INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS shots (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	track_id INTEGER NOT NULL REFERENCES tracks(id),
	position INTEGER NOT NULL,
	name     TEXT NOT NULL,
	start    INTEGER NOT NULL,
	duration INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS layers (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	shot_id  INTEGER NOT NULL REFERENCES shots(id),
	position INTEGER NOT NULL,
	asset    TEXT NOT NULL,
	opacity  REAL NOT NULL DEFAULT 1,
	scale    REAL NOT NULL DEFAULT 1,
	offset_x INTEGER NOT NULL DEFAULT 0,
	offset_y INTEGER NOT NULL DEFAULT 0,
	hidden   INTEGER NOT NULL DEFAULT 0
);
`

// Store is a SQLite-backed project file.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (or creates) a project store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("project path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open project db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping project db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("init project schema: %w", err)
	}

	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveSequence replaces the stored sequence with seq. A project file
// holds exactly one sequence.
func (s *Store) SaveSequence(seq *timeline.Sequence) error {
	tx, err := s.sqlDB.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"layers", "shots", "tracks", "sequences"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	res, err := tx.Exec(
		"INSERT INTO sequences (name, fps, width, height) VALUES (?, ?, ?, ?)",
		seq.Name, seq.FPS, seq.Width, seq.Height,
	)
	if err != nil {
		return fmt.Errorf("insert sequence: %w", err)
	}
	seqID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sequence id: %w", err)
	}

	for ti, tr := range seq.Tracks {
		res, err := tx.Exec(
			"INSERT INTO tracks (sequence_id, position, name, muted) VALUES (?, ?, ?, ?)",
			seqID, ti, tr.Name, tr.Muted,
		)
		if err != nil {
			return fmt.Errorf("insert track %s: %w", tr.Name, err)
		}
		trackID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("track id: %w", err)
		}

		for si, sh := range tr.Shots {
			res, err := tx.Exec(
				"INSERT INTO shots (track_id, position, name, start, duration) VALUES (?, ?, ?, ?, ?)",
				trackID, si, sh.Name, sh.Start, sh.Duration,
			)
			if err != nil {
				return fmt.Errorf("insert shot %s: %w", sh.Name, err)
			}
			shotID, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("shot id: %w", err)
			}

			for li, ly := range sh.Layers {
				if _, err := tx.Exec(
					"INSERT INTO layers (shot_id, position, asset, opacity, scale, offset_x, offset_y, hidden) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
					shotID, li, ly.Asset, ly.Opacity, ly.Scale, ly.OffsetX, ly.OffsetY, ly.Hidden,
				); err != nil {
					return fmt.Errorf("insert layer %s: %w", ly.Asset, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// LoadSequence reads the stored sequence. Returns ErrNoSequence when
// the project file is fresh.
func (s *Store) LoadSequence() (*timeline.Sequence, error) {
	seq := &timeline.Sequence{}
	var seqID int64
	err := s.sqlDB.QueryRow(
		"SELECT id, name, fps, width, height FROM sequences ORDER BY id LIMIT 1",
	).Scan(&seqID, &seq.Name, &seq.FPS, &seq.Width, &seq.Height)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSequence
	}
	if err != nil {
		return nil, fmt.Errorf("load sequence: %w", err)
	}

	trackIndex := map[int64]int{}
	rows, err := s.sqlDB.Query(
		"SELECT id, name, muted FROM tracks WHERE sequence_id = ? ORDER BY position",
		seqID,
	)
	if err != nil {
		return nil, fmt.Errorf("load tracks: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		var tr timeline.Track
		if err := rows.Scan(&id, &tr.Name, &tr.Muted); err != nil {
			return nil, fmt.Errorf("scan track: %w", err)
		}
		trackIndex[id] = len(seq.Tracks)
		seq.Tracks = append(seq.Tracks, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tracks: %w", err)
	}

	shotIndex := map[int64][2]int{} // shot id -> (track index, shot index)
	shotRows, err := s.sqlDB.Query(`
		SELECT sh.id, sh.track_id, sh.name, sh.start, sh.duration
		FROM shots sh
		JOIN tracks tr ON tr.id = sh.track_id
		WHERE tr.sequence_id = ?
		ORDER BY sh.track_id, sh.position`, seqID)
	if err != nil {
		return nil, fmt.Errorf("load shots: %w", err)
	}
	defer shotRows.Close()
	for shotRows.Next() {
		var id, trackID int64
		var sh timeline.Shot
		if err := shotRows.Scan(&id, &trackID, &sh.Name, &sh.Start, &sh.Duration); err != nil {
			return nil, fmt.Errorf("scan shot: %w", err)
		}
		ti, ok := trackIndex[trackID]
		if !ok {
			continue
		}
		shotIndex[id] = [2]int{ti, len(seq.Tracks[ti].Shots)}
		seq.Tracks[ti].Shots = append(seq.Tracks[ti].Shots, sh)
	}
	if err := shotRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shots: %w", err)
	}

	layerRows, err := s.sqlDB.Query(`
		SELECT ly.shot_id, ly.asset, ly.opacity, ly.scale, ly.offset_x, ly.offset_y, ly.hidden
		FROM layers ly
		JOIN shots sh ON sh.id = ly.shot_id
		JOIN tracks tr ON tr.id = sh.track_id
		WHERE tr.sequence_id = ?
		ORDER BY ly.shot_id, ly.position`, seqID)
	if err != nil {
		return nil, fmt.Errorf("load layers: %w", err)
	}
	defer layerRows.Close()
	for layerRows.Next() {
		var shotID int64
		var ly timeline.Layer
		if err := layerRows.Scan(&shotID, &ly.Asset, &ly.Opacity, &ly.Scale, &ly.OffsetX, &ly.OffsetY, &ly.Hidden); err != nil {
			return nil, fmt.Errorf("scan layer: %w", err)
		}
		pos, ok := shotIndex[shotID]
		if !ok {
			continue
		}
		sh := &seq.Tracks[pos[0]].Shots[pos[1]]
		sh.Layers = append(sh.Layers, ly)
	}
	if err := layerRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate layers: %w", err)
	}

	seq.Normalize()
	return seq, nil
}
