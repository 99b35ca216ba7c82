package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sqlx.DB
}

// NewDB creates a new database connection
func NewDB(databaseURL string) (*DB, error) {
	if databaseURL == "" {
		databaseURL = "arithimancia.db" // Default SQLite file
	}

	db, err := sqlx.Connect("sqlite3", databaseURL+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	dbWrapper := &DB{DB: db}

	if err := dbWrapper.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return dbWrapper, nil
}

// Transact runs fn inside a transaction, committing on nil and rolling back
// on error or panic.
func (db *DB) Transact(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// createTables creates the necessary database tables
func (db *DB) createTables() error {
	playersTable := `
	CREATE TABLE IF NOT EXISTS players (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		last_login_at DATETIME
	);`

	schoolsTable := `
	CREATE TABLE IF NOT EXISTS schools (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT UNIQUE NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		axiom TEXT NOT NULL DEFAULT '',
		health_bonus INTEGER NOT NULL DEFAULT 0,
		starting_gold INTEGER NOT NULL DEFAULT 0
	);`

	charactersTable := `
	CREATE TABLE IF NOT EXISTS characters (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		player_id INTEGER NOT NULL,
		school_id INTEGER,
		name TEXT NOT NULL,
		level INTEGER NOT NULL DEFAULT 1,
		experience_points INTEGER NOT NULL DEFAULT 0,
		max_health INTEGER NOT NULL DEFAULT 100,
		current_health INTEGER NOT NULL DEFAULT 100,
		gold INTEGER NOT NULL DEFAULT 100,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		last_login DATETIME,
		UNIQUE (player_id, name),
		FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE,
		FOREIGN KEY (school_id) REFERENCES schools(id)
	);`

	monstersTable := `
	CREATE TABLE IF NOT EXISTS monsters (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		base_health INTEGER NOT NULL,
		mathematical_concept TEXT NOT NULL DEFAULT '',
		difficulty_level INTEGER NOT NULL DEFAULT 1,
		experience_reward INTEGER NOT NULL DEFAULT 0,
		gold_reward INTEGER NOT NULL DEFAULT 0
	);`

	problemsTable := `
	CREATE TABLE IF NOT EXISTS problems (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		description TEXT NOT NULL,
		problem_type TEXT NOT NULL DEFAULT '',
		answer TEXT NOT NULL,
		difficulty_level INTEGER NOT NULL DEFAULT 1,
		hint_text TEXT NOT NULL DEFAULT '',
		time_limit_seconds INTEGER,
		experience_reward INTEGER NOT NULL DEFAULT 0
	);`

	encountersTable := `
	CREATE TABLE IF NOT EXISTS encounters (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		character_id INTEGER NOT NULL,
		monster_id INTEGER NOT NULL,
		problem_id INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'IN_PROGRESS',
		monster_current_health INTEGER NOT NULL,
		character_health_at_start INTEGER NOT NULL,
		started_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		completed_at DATETIME,
		FOREIGN KEY (character_id) REFERENCES characters(id) ON DELETE CASCADE,
		FOREIGN KEY (monster_id) REFERENCES monsters(id),
		FOREIGN KEY (problem_id) REFERENCES problems(id)
	);`

	attemptsTable := `
	CREATE TABLE IF NOT EXISTS problem_attempts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		character_id INTEGER NOT NULL,
		problem_id INTEGER NOT NULL,
		user_answer TEXT NOT NULL,
		is_correct BOOLEAN NOT NULL,
		time_taken_seconds INTEGER,
		attempted_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (character_id) REFERENCES characters(id) ON DELETE CASCADE,
		FOREIGN KEY (problem_id) REFERENCES problems(id)
	);`

	itemsTable := `
	CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL DEFAULT '',
		health_bonus INTEGER NOT NULL DEFAULT 0,
		price INTEGER NOT NULL DEFAULT 0,
		is_tradeable BOOLEAN NOT NULL DEFAULT TRUE,
		is_consumable BOOLEAN NOT NULL DEFAULT FALSE
	);`

	questsTable := `
	CREATE TABLE IF NOT EXISTS quests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		experience_reward INTEGER NOT NULL DEFAULT 50,
		gold_reward INTEGER NOT NULL DEFAULT 25,
		item_reward_id INTEGER,
		min_level INTEGER NOT NULL DEFAULT 1,
		is_repeatable BOOLEAN NOT NULL DEFAULT FALSE,
		FOREIGN KEY (item_reward_id) REFERENCES items(id)
	);`

	objectivesTable := `
	CREATE TABLE IF NOT EXISTS quest_objectives (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		quest_id INTEGER NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL DEFAULT 'SOLVE',
		target_quantity INTEGER NOT NULL DEFAULT 1,
		order_index INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (quest_id) REFERENCES quests(id) ON DELETE CASCADE
	);`

	characterQuestsTable := `
	CREATE TABLE IF NOT EXISTS character_quests (
		character_id INTEGER NOT NULL,
		quest_id INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'ACTIVE',
		current_objective_index INTEGER NOT NULL DEFAULT 0,
		started_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		completed_at DATETIME,
		PRIMARY KEY (character_id, quest_id),
		FOREIGN KEY (character_id) REFERENCES characters(id) ON DELETE CASCADE,
		FOREIGN KEY (quest_id) REFERENCES quests(id) ON DELETE CASCADE
	);`

	inventoryTable := `
	CREATE TABLE IF NOT EXISTS inventory (
		character_id INTEGER NOT NULL,
		item_id INTEGER NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 1,
		is_equipped BOOLEAN NOT NULL DEFAULT FALSE,
		acquired_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (character_id, item_id),
		FOREIGN KEY (character_id) REFERENCES characters(id) ON DELETE CASCADE,
		FOREIGN KEY (item_id) REFERENCES items(id)
	);`

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_players_username ON players(username);`,
		`CREATE INDEX IF NOT EXISTS idx_players_email ON players(email);`,
		`CREATE INDEX IF NOT EXISTS idx_characters_player_id ON characters(player_id);`,
		`CREATE INDEX IF NOT EXISTS idx_monsters_difficulty ON monsters(difficulty_level);`,
		`CREATE INDEX IF NOT EXISTS idx_problems_difficulty ON problems(difficulty_level);`,
		`CREATE INDEX IF NOT EXISTS idx_encounters_character ON encounters(character_id, status);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_character ON problem_attempts(character_id);`,
		`CREATE INDEX IF NOT EXISTS idx_objectives_quest ON quest_objectives(quest_id, order_index);`,
		`CREATE INDEX IF NOT EXISTS idx_character_quests_status ON character_quests(character_id, status);`,
	}

	tables := []string{
		playersTable, schoolsTable, charactersTable, monstersTable,
		problemsTable, encountersTable, attemptsTable, itemsTable,
		questsTable, objectivesTable, characterQuestsTable, inventoryTable,
	}

	for _, query := range tables {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	for _, index := range indexes {
		if _, err := db.Exec(index); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
