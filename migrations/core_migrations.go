package migrations

import "gorm.io/gorm"

func GetCoreMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_01_02_000000_create_players_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS players (
						id BIGINT PRIMARY KEY,
						alias VARCHAR(255) NOT NULL,
						level INT DEFAULT 4,
						elo_rating INT DEFAULT 1200,
						total_matches INT DEFAULT 0,
						wins INT DEFAULT 0,
						losses INT DEFAULT 0,
						streak INT DEFAULT 0,
						best_streak INT DEFAULT 0,
						promotions INT DEFAULT 0,
						demotions INT DEFAULT 0,
						active BOOLEAN DEFAULT true,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL,
						FOREIGN KEY (id) REFERENCES users(id) ON DELETE CASCADE
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_players_alias ON players(alias);
					CREATE INDEX IF NOT EXISTS idx_players_deleted_at ON players(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_players_level ON players(level);
					CREATE INDEX IF NOT EXISTS idx_players_elo_rating ON players(elo_rating);
					CREATE INDEX IF NOT EXISTS idx_players_active ON players(active);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS players CASCADE").Error
			},
		},
		{
			Name: "2025_01_03_000000_create_matches_tables",
			Up: func(db *gorm.DB) error {
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS matches (
						id BIGSERIAL PRIMARY KEY,
						kind VARCHAR(20) DEFAULT 'individual',
						winner_id BIGINT NULL,
						loser_id BIGINT NULL,
						winner_level_before INT DEFAULT 0,
						loser_level_before INT DEFAULT 0,
						challenge_id BIGINT NULL,
						completed_at TIMESTAMP NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL,
						FOREIGN KEY (winner_id) REFERENCES players(id) ON DELETE CASCADE,
						FOREIGN KEY (loser_id) REFERENCES players(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_matches_kind ON matches(kind);
					CREATE INDEX IF NOT EXISTS idx_matches_winner_id ON matches(winner_id);
					CREATE INDEX IF NOT EXISTS idx_matches_loser_id ON matches(loser_id);
					CREATE INDEX IF NOT EXISTS idx_matches_completed_at ON matches(completed_at);
					CREATE INDEX IF NOT EXISTS idx_matches_deleted_at ON matches(deleted_at);
				`).Error; err != nil {
					return err
				}

				return db.Exec(`
					CREATE TABLE IF NOT EXISTS group_match_participants (
						id BIGSERIAL PRIMARY KEY,
						match_id BIGINT NOT NULL,
						player_id BIGINT NOT NULL,
						team INT NOT NULL,
						won BOOLEAN NOT NULL,
						FOREIGN KEY (match_id) REFERENCES matches(id) ON DELETE CASCADE,
						FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_group_match_participants_match_id ON group_match_participants(match_id);
					CREATE INDEX IF NOT EXISTS idx_group_match_participants_player_id ON group_match_participants(player_id);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				if err := db.Exec("DROP TABLE IF EXISTS group_match_participants CASCADE").Error; err != nil {
					return err
				}
				return db.Exec("DROP TABLE IF EXISTS matches CASCADE").Error
			},
		},
		{
			Name: "2025_01_04_000000_create_challenges_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS challenges (
						id BIGSERIAL PRIMARY KEY,
						challenger_id BIGINT NOT NULL,
						challenged_id BIGINT NOT NULL,
						suggested_by_id BIGINT NULL,
						kind VARCHAR(20) DEFAULT 'direct',
						challenger_acceptance VARCHAR(20) DEFAULT 'pending',
						challenged_acceptance VARCHAR(20) DEFAULT 'pending',
						status VARCHAR(20) DEFAULT 'pending',
						expires_at TIMESTAMP NOT NULL,
						accepted_at TIMESTAMP NULL,
						completed_at TIMESTAMP NULL,
						winner_id BIGINT NULL,
						match_id BIGINT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL,
						FOREIGN KEY (challenger_id) REFERENCES players(id) ON DELETE CASCADE,
						FOREIGN KEY (challenged_id) REFERENCES players(id) ON DELETE CASCADE,
						FOREIGN KEY (suggested_by_id) REFERENCES players(id),
						FOREIGN KEY (winner_id) REFERENCES players(id),
						FOREIGN KEY (match_id) REFERENCES matches(id)
					);
					CREATE INDEX IF NOT EXISTS idx_challenges_challenger_id ON challenges(challenger_id);
					CREATE INDEX IF NOT EXISTS idx_challenges_challenged_id ON challenges(challenged_id);
					CREATE INDEX IF NOT EXISTS idx_challenges_status ON challenges(status);
					CREATE INDEX IF NOT EXISTS idx_challenges_expires_at ON challenges(expires_at);
					CREATE INDEX IF NOT EXISTS idx_challenges_deleted_at ON challenges(deleted_at);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS challenges CASCADE").Error
			},
		},
		{
			Name: "2025_01_05_000000_create_history_tables",
			Up: func(db *gorm.DB) error {
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS elo_history (
						id BIGSERIAL PRIMARY KEY,
						player_id BIGINT NOT NULL,
						match_id BIGINT NOT NULL,
						elo_before INT NOT NULL,
						elo_after INT NOT NULL,
						elo_change INT NOT NULL,
						opponent_id BIGINT,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL,
						FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE,
						FOREIGN KEY (match_id) REFERENCES matches(id) ON DELETE CASCADE,
						FOREIGN KEY (opponent_id) REFERENCES players(id)
					);
					CREATE INDEX IF NOT EXISTS idx_elo_history_player_id ON elo_history(player_id);
					CREATE INDEX IF NOT EXISTS idx_elo_history_match_id ON elo_history(match_id);
					CREATE INDEX IF NOT EXISTS idx_elo_history_deleted_at ON elo_history(deleted_at);
				`).Error; err != nil {
					return err
				}

				return db.Exec(`
					CREATE TABLE IF NOT EXISTS level_history (
						id BIGSERIAL PRIMARY KEY,
						player_id BIGINT NOT NULL,
						old_level INT NOT NULL,
						new_level INT NOT NULL,
						reason VARCHAR(30) NOT NULL,
						match_id BIGINT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL,
						FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE,
						FOREIGN KEY (match_id) REFERENCES matches(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_level_history_player_id ON level_history(player_id);
					CREATE INDEX IF NOT EXISTS idx_level_history_created_at ON level_history(created_at);
					CREATE INDEX IF NOT EXISTS idx_level_history_deleted_at ON level_history(deleted_at);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				if err := db.Exec("DROP TABLE IF EXISTS level_history CASCADE").Error; err != nil {
					return err
				}
				return db.Exec("DROP TABLE IF EXISTS elo_history CASCADE").Error
			},
		},
	}
}
