package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Matches table - one row per match played this session
		`CREATE TABLE IF NOT EXISTS matches (
			id TEXT PRIMARY KEY,
			toss_call INTEGER NOT NULL DEFAULT 0,
			toss_roll INTEGER NOT NULL DEFAULT 0,
			user_won_toss INTEGER NOT NULL DEFAULT 0,
			user_bats_first INTEGER NOT NULL DEFAULT 0,
			user_score INTEGER NOT NULL DEFAULT 0,
			computer_score INTEGER NOT NULL DEFAULT 0,
			target INTEGER NOT NULL DEFAULT -1,
			result TEXT NOT NULL DEFAULT 'no_result'
				CHECK(result IN ('no_result', 'user_won', 'computer_won', 'draw')),
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			finished_at DATETIME
		)`,

		// Deliveries table - every ball bowled in a match
		`CREATE TABLE IF NOT EXISTS deliveries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
			sequence INTEGER NOT NULL,
			inning INTEGER NOT NULL CHECK(inning IN (1, 2)),
			user_batting INTEGER NOT NULL,
			user_move INTEGER NOT NULL CHECK(user_move BETWEEN 1 AND 6),
			computer_move INTEGER NOT NULL CHECK(computer_move BETWEEN 1 AND 6),
			is_out INTEGER NOT NULL DEFAULT 0,
			runs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_deliveries_match_id ON deliveries(match_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
