// Package ledger persists the round/match score ledger in an embedded
// sqlite database. One row per completed round, one per match; nothing
// else about game state is persisted.
package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/ceruleanoak/hanafuda-sub004/engine"
)

const schema = `
CREATE TABLE IF NOT EXISTS matches (
	id           TEXT PRIMARY KEY,
	variant      TEXT NOT NULL,
	players      INTEGER NOT NULL,
	total_rounds INTEGER NOT NULL,
	seed         INTEGER NOT NULL,
	started_at   TIMESTAMP NOT NULL,
	finished_at  TIMESTAMP,
	winner       INTEGER,
	scores       TEXT
);
CREATE TABLE IF NOT EXISTS rounds (
	match_id  TEXT NOT NULL REFERENCES matches(id),
	round_no  INTEGER NOT NULL,
	scorer    INTEGER NOT NULL,
	totals    TEXT NOT NULL,
	yaku      TEXT NOT NULL,
	PRIMARY KEY (match_id, round_no)
);
`

// Ledger wraps the sqlite handle.
type Ledger struct {
	db  *sql.DB
	log *logrus.Logger
}

// Open opens (creating if needed) the ledger database at path and applies
// the schema.
func Open(path string, log *logrus.Logger) (*Ledger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply ledger schema: %w", err)
	}
	return &Ledger{db: db, log: log}, nil
}

// Close releases the database handle.
func (l *Ledger) Close() error { return l.db.Close() }

// StartMatch records a new match row.
func (l *Ledger) StartMatch(ctx context.Context, id uuid.UUID, opts engine.MatchOptions) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO matches (id, variant, players, total_rounds, seed, started_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id.String(), string(opts.Variant), opts.NumPlayers, opts.TotalRounds,
		int64(opts.Seed), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	l.log.WithFields(logrus.Fields{"match": id, "variant": opts.Variant}).Debug("ledger: match started")
	return nil
}

// RecordRound appends one completed round's breakdown. yakuNames lists the
// scorer's completed yaku, if any.
func (l *Ledger) RecordRound(ctx context.Context, id uuid.UUID, roundNo int, result engine.ScoreBreakdown, yakuNames []string) error {
	totals, err := json.Marshal(result.Totals)
	if err != nil {
		return fmt.Errorf("encode totals: %w", err)
	}
	if yakuNames == nil {
		yakuNames = []string{}
	}
	yaku, err := json.Marshal(yakuNames)
	if err != nil {
		return fmt.Errorf("encode yaku: %w", err)
	}
	_, err = l.db.ExecContext(ctx,
		`INSERT INTO rounds (match_id, round_no, scorer, totals, yaku) VALUES (?, ?, ?, ?, ?)`,
		id.String(), roundNo, result.Scorer, string(totals), string(yaku))
	if err != nil {
		return fmt.Errorf("insert round: %w", err)
	}
	return nil
}

// FinishMatch finalizes the match row with the winner and cumulative scores.
func (l *Ledger) FinishMatch(ctx context.Context, id uuid.UUID, winner int, scores []int) error {
	encoded, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}
	_, err = l.db.ExecContext(ctx,
		`UPDATE matches SET finished_at = ?, winner = ?, scores = ? WHERE id = ?`,
		time.Now().UTC(), winner, string(encoded), id.String())
	if err != nil {
		return fmt.Errorf("finish match: %w", err)
	}
	l.log.WithFields(logrus.Fields{"match": id, "winner": winner}).Debug("ledger: match finished")
	return nil
}

// MatchRecord is one row of match history.
type MatchRecord struct {
	ID      uuid.UUID
	Variant string
	Players int
	Rounds  int
	Winner  int
	Scores  []int
}

// History returns finished matches, newest first.
func (l *Ledger) History(ctx context.Context, limit int) ([]MatchRecord, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, variant, players, total_rounds, winner, scores
		 FROM matches WHERE finished_at IS NOT NULL
		 ORDER BY finished_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []MatchRecord
	for rows.Next() {
		var rec MatchRecord
		var id, scores string
		if err := rows.Scan(&id, &rec.Variant, &rec.Players, &rec.Rounds, &rec.Winner, &scores); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		rec.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse match id %q: %w", id, err)
		}
		if err := json.Unmarshal([]byte(scores), &rec.Scores); err != nil {
			return nil, fmt.Errorf("decode scores: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
