package savedb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"starhold.gg/internal/campaign"
)

// SaveRecord is one row of the save index: enough metadata to render a
// load-game menu without opening the save file itself.
type SaveRecord struct {
	ID                string
	CampaignID        string
	Slot              string
	Day               int
	Credits           int
	CrewAlive         int
	CrewTotal         int
	MissionsCompleted int
	Path              string
	Digest            string
	CreatedAt         string
}

type req struct {
	rec  SaveRecord
	done chan struct{} // nil except for flush barriers
}

// SQLiteIndex records written saves through a single writer goroutine; the
// campaign session never blocks on the database. Reads go straight to the
// connection.
type SQLiteIndex struct {
	db *sql.DB

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{
		db: db,
		ch: make(chan req, 256),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	// WAL is much faster for append-style workloads; NORMAL is a decent
	// durability/perf tradeoff for a secondary index.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS saves (
			id TEXT PRIMARY KEY,
			campaign_id TEXT NOT NULL,
			slot TEXT NOT NULL,
			day INTEGER NOT NULL,
			credits INTEGER NOT NULL,
			crew_alive INTEGER NOT NULL,
			crew_total INTEGER NOT NULL,
			missions_completed INTEGER NOT NULL,
			path TEXT NOT NULL,
			digest TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_saves_slot_created ON saves(slot, created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_saves_campaign ON saves(campaign_id, created_at);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	if _, err := db.Exec(`INSERT OR REPLACE INTO meta(key,value) VALUES('schema_version','1')`); err != nil {
		return err
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

// RecordSave queues an index row for a save that was just written. Returns
// the assigned save id. Rows are dropped if the index falls badly behind;
// the save file itself remains the source of truth.
func (s *SQLiteIndex) RecordSave(campaignID, slot, path, digest string, snap *campaign.Snapshot) string {
	if s == nil || s.closed.Load() || snap == nil {
		return ""
	}
	alive := 0
	for _, cm := range snap.Crew {
		if cm.Alive {
			alive++
		}
	}
	r := SaveRecord{
		ID:                uuid.NewString(),
		CampaignID:        campaignID,
		Slot:              slot,
		Day:               snap.Day,
		Credits:           snap.Resources[campaign.ResourceCredits],
		CrewAlive:         alive,
		CrewTotal:         len(snap.Crew),
		MissionsCompleted: snap.Stats.MissionsCompleted,
		Path:              path,
		Digest:            digest,
		CreatedAt:         time.Now().UTC().Format(time.RFC3339Nano),
	}
	select {
	case s.ch <- req{rec: r}:
	default:
		return ""
	}
	return r.ID
}

// Flush blocks until every previously queued row has been written. Used by
// shutdown paths and tests that read back immediately.
func (s *SQLiteIndex) Flush() {
	if s == nil || s.closed.Load() {
		return
	}
	done := make(chan struct{})
	s.ch <- req{done: done}
	<-done
}

// List returns every indexed save, newest first.
func (s *SQLiteIndex) List() ([]SaveRecord, error) {
	rows, err := s.db.Query(`SELECT id,campaign_id,slot,day,credits,crew_alive,crew_total,missions_completed,path,digest,created_at
		FROM saves ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Latest returns the newest save in a slot.
func (s *SQLiteIndex) Latest(slot string) (SaveRecord, bool, error) {
	rows, err := s.db.Query(`SELECT id,campaign_id,slot,day,credits,crew_alive,crew_total,missions_completed,path,digest,created_at
		FROM saves WHERE slot=? ORDER BY created_at DESC LIMIT 1`, slot)
	if err != nil {
		return SaveRecord{}, false, err
	}
	defer rows.Close()
	recs, err := scanRecords(rows)
	if err != nil || len(recs) == 0 {
		return SaveRecord{}, false, err
	}
	return recs[0], true, nil
}

func scanRecords(rows *sql.Rows) ([]SaveRecord, error) {
	var out []SaveRecord
	for rows.Next() {
		var r SaveRecord
		if err := rows.Scan(&r.ID, &r.CampaignID, &r.Slot, &r.Day, &r.Credits, &r.CrewAlive, &r.CrewTotal,
			&r.MissionsCompleted, &r.Path, &r.Digest, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteIndex) loop() {
	ctx := context.Background()
	insert, err := s.db.Prepare(`INSERT OR REPLACE INTO saves(id,campaign_id,slot,day,credits,crew_alive,crew_total,missions_completed,path,digest,created_at)
		VALUES(?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		for r := range s.ch {
			if r.done != nil {
				close(r.done)
			}
		}
		return
	}
	defer insert.Close()

	for r := range s.ch {
		if r.done != nil {
			close(r.done)
			continue
		}
		if _, err := insert.ExecContext(ctx,
			r.rec.ID, r.rec.CampaignID, r.rec.Slot, r.rec.Day, r.rec.Credits, r.rec.CrewAlive, r.rec.CrewTotal,
			r.rec.MissionsCompleted, r.rec.Path, r.rec.Digest, r.rec.CreatedAt,
		); err != nil {
			continue
		}
	}
}
