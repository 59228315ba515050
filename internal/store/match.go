package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Result values stored in the matches table.
const (
	ResultNone        = "no_result"
	ResultUserWon     = "user_won"
	ResultComputerWon = "computer_won"
	ResultDraw        = "draw"
)

// Match is one row of the session ledger.
type Match struct {
	ID            string
	TossCall      int
	TossRoll      int
	UserWonToss   bool
	UserBatsFirst bool
	UserScore     int
	ComputerScore int
	Target        int
	Result        string
	StartedAt     time.Time
	FinishedAt    *time.Time
}

// Finished reports whether the match has a recorded end time.
func (m *Match) Finished() bool {
	return m.FinishedAt != nil
}

// MatchRepository provides access to the matches table.
type MatchRepository struct {
	db *sql.DB
}

// Matches returns the match repository for this store.
func (s *Store) Matches() *MatchRepository {
	return &MatchRepository{db: s.db}
}

// Create inserts a new match. Target defaults to -1 and Result to no_result
// when left zero.
func (r *MatchRepository) Create(m *Match) error {
	if m.StartedAt.IsZero() {
		m.StartedAt = time.Now()
	}
	if m.Result == "" {
		m.Result = ResultNone
	}
	if m.Target == 0 {
		m.Target = -1
	}

	_, err := r.db.Exec(
		`INSERT INTO matches (id, toss_call, toss_roll, user_won_toss, user_bats_first,
			user_score, computer_score, target, result, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.TossCall, m.TossRoll, m.UserWonToss, m.UserBatsFirst,
		m.UserScore, m.ComputerScore, m.Target, m.Result, m.StartedAt, nullTime(m.FinishedAt),
	)
	return err
}

// Update writes the mutable columns of an existing match.
func (r *MatchRepository) Update(m *Match) error {
	result, err := r.db.Exec(
		`UPDATE matches SET toss_call = ?, toss_roll = ?, user_won_toss = ?, user_bats_first = ?,
			user_score = ?, computer_score = ?, target = ?, result = ?, finished_at = ?
		 WHERE id = ?`,
		m.TossCall, m.TossRoll, m.UserWonToss, m.UserBatsFirst,
		m.UserScore, m.ComputerScore, m.Target, m.Result, nullTime(m.FinishedAt), m.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// GetByID retrieves a match by its ID.
func (r *MatchRepository) GetByID(id string) (*Match, error) {
	row := r.db.QueryRow(
		`SELECT id, toss_call, toss_roll, user_won_toss, user_bats_first,
			user_score, computer_score, target, result, started_at, finished_at
		 FROM matches WHERE id = ?`,
		id,
	)

	m, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// List returns every match of the session, newest first.
func (r *MatchRepository) List() ([]*Match, error) {
	rows, err := r.db.Query(
		`SELECT id, toss_call, toss_roll, user_won_toss, user_bats_first,
			user_score, computer_score, target, result, started_at, finished_at
		 FROM matches ORDER BY started_at DESC, rowid DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return matches, nil
}

// Tally counts finished matches by result.
func (r *MatchRepository) Tally() (map[string]int, error) {
	rows, err := r.db.Query(
		`SELECT result, COUNT(*) FROM matches WHERE finished_at IS NOT NULL GROUP BY result`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tally := make(map[string]int)
	for rows.Next() {
		var result string
		var n int
		if err := rows.Scan(&result, &n); err != nil {
			return nil, err
		}
		tally[result] = n
	}

	return tally, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (*Match, error) {
	m := &Match{}
	var finished sql.NullTime

	err := row.Scan(
		&m.ID, &m.TossCall, &m.TossRoll, &m.UserWonToss, &m.UserBatsFirst,
		&m.UserScore, &m.ComputerScore, &m.Target, &m.Result, &m.StartedAt, &finished,
	)
	if err != nil {
		return nil, err
	}

	if finished.Valid {
		t := finished.Time
		m.FinishedAt = &t
	}
	return m, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
