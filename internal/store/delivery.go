package store

import (
	"database/sql"
	"time"
)

// Delivery is one ball bowled in a match.
type Delivery struct {
	ID           int64
	MatchID      string
	Sequence     int
	Inning       int
	UserBatting  bool
	UserMove     int
	ComputerMove int
	Out          bool
	Runs         int
	CreatedAt    time.Time
}

// DeliveryRepository provides access to the deliveries table.
type DeliveryRepository struct {
	db *sql.DB
}

// Deliveries returns the delivery repository for this store.
func (s *Store) Deliveries() *DeliveryRepository {
	return &DeliveryRepository{db: s.db}
}

// Create inserts a delivery and sets its ID. When Sequence is zero the next
// sequence number for the match is assigned.
func (r *DeliveryRepository) Create(d *Delivery) error {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}

	if d.Sequence == 0 {
		err := r.db.QueryRow(
			`SELECT COALESCE(MAX(sequence), 0) + 1 FROM deliveries WHERE match_id = ?`,
			d.MatchID,
		).Scan(&d.Sequence)
		if err != nil {
			return err
		}
	}

	result, err := r.db.Exec(
		`INSERT INTO deliveries (match_id, sequence, inning, user_batting, user_move,
			computer_move, is_out, runs, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.MatchID, d.Sequence, d.Inning, d.UserBatting, d.UserMove,
		d.ComputerMove, d.Out, d.Runs, d.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = id

	return nil
}

// ListByMatch returns the deliveries of a match in the order they were bowled.
func (r *DeliveryRepository) ListByMatch(matchID string) ([]*Delivery, error) {
	rows, err := r.db.Query(
		`SELECT id, match_id, sequence, inning, user_batting, user_move,
			computer_move, is_out, runs, created_at
		 FROM deliveries WHERE match_id = ? ORDER BY sequence`,
		matchID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deliveries []*Delivery
	for rows.Next() {
		d := &Delivery{}
		err := rows.Scan(
			&d.ID, &d.MatchID, &d.Sequence, &d.Inning, &d.UserBatting, &d.UserMove,
			&d.ComputerMove, &d.Out, &d.Runs, &d.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
