package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Plans must be created before meetups due to the foreign key constraint.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS plans (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    username TEXT NOT NULL,
    mood TEXT NOT NULL,
    start_loc TEXT NOT NULL,
    route_json TEXT NOT NULL,
    summary TEXT NOT NULL DEFAULT '',
    post_mood TEXT,
    review_text TEXT,
    rating INTEGER CHECK (rating IS NULL OR (rating BETWEEN 1 AND 5)),
    created_at INTEGER NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS meetups (
    id TEXT PRIMARY KEY,
    plan_id TEXT NOT NULL,
    host_id TEXT NOT NULL,
    host_name TEXT NOT NULL,
    meetup_time TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (plan_id) REFERENCES plans(id),
    FOREIGN KEY (host_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS meetup_participants (
    meetup_id TEXT NOT NULL,
    username TEXT NOT NULL,
    joined_at INTEGER NOT NULL,
    PRIMARY KEY (meetup_id, username),
    FOREIGN KEY (meetup_id) REFERENCES meetups(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_plans_created_at ON plans(created_at);
CREATE INDEX IF NOT EXISTS idx_meetups_created_at ON meetups(created_at);
CREATE INDEX IF NOT EXISTS idx_meetups_plan_id ON meetups(plan_id);
CREATE INDEX IF NOT EXISTS idx_meetup_participants_meetup_id ON meetup_participants(meetup_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
