package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		planned_start    TEXT,
		planned_end      TEXT,
		actual_start     TEXT,
		actual_end       TEXT,
		planned_progress REAL NOT NULL DEFAULT 0,
		actual_progress  REAL NOT NULL DEFAULT 0,
		budgeted_cost    INTEGER NOT NULL DEFAULT 0,
		actual_cost      INTEGER NOT NULL DEFAULT 0,
		status           TEXT NOT NULL DEFAULT 'pending'
		                 CHECK(status IN ('pending','in_progress','completed')),
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS milestones (
		id               TEXT PRIMARY KEY,
		project_id       TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		title            TEXT NOT NULL,
		weight           REAL NOT NULL DEFAULT 0 CHECK(weight >= 0),
		planned_start    TEXT,
		planned_end      TEXT,
		actual_start     TEXT,
		actual_end       TEXT,
		planned_progress REAL NOT NULL DEFAULT 0,
		actual_progress  REAL NOT NULL DEFAULT 0,
		budgeted_cost    INTEGER NOT NULL DEFAULT 0,
		actual_cost      INTEGER NOT NULL DEFAULT 0,
		status           TEXT NOT NULL DEFAULT 'pending'
		                 CHECK(status IN ('pending','in_progress','completed')),
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_milestones_project ON milestones(project_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id               TEXT PRIMARY KEY,
		milestone_id     TEXT NOT NULL REFERENCES milestones(id) ON DELETE CASCADE,
		title            TEXT NOT NULL,
		weight           REAL NOT NULL DEFAULT 0 CHECK(weight >= 0),
		sequence_group   TEXT NOT NULL DEFAULT '',
		planned_start    TEXT,
		planned_end      TEXT,
		actual_start     TEXT,
		actual_end       TEXT,
		planned_progress REAL NOT NULL DEFAULT 0,
		progress         REAL NOT NULL DEFAULT 0,
		budgeted_cost    INTEGER NOT NULL DEFAULT 0,
		actual_cost      INTEGER NOT NULL DEFAULT 0,
		status           TEXT NOT NULL DEFAULT 'pending'
		                 CHECK(status IN ('pending','in_progress','completed')),
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_milestone ON tasks(milestone_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,

	`CREATE TABLE IF NOT EXISTS deliverables (
		id            TEXT PRIMARY KEY,
		task_id       TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		title         TEXT NOT NULL,
		weight        REAL NOT NULL DEFAULT 0 CHECK(weight >= 0),
		planned_start TEXT,
		planned_end   TEXT,
		budgeted_cost INTEGER NOT NULL DEFAULT 0,
		actual_cost   INTEGER NOT NULL DEFAULT 0,
		is_done       INTEGER NOT NULL DEFAULT 0,
		completed_at  TEXT,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_deliverables_task ON deliverables(task_id)`,
}
