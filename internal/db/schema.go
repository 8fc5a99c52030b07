package db

// SchemaSQL is the complete schema for fresh gantt installs.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// this schema via GetSchemaSQL(): if repository code references a column that
// doesn't exist here, tests fail immediately with "no such column" instead of
// drifting from production.
const SchemaSQL = `
-- Projects (timeline owners)
CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('active', 'archived')) DEFAULT 'active',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Milestones (time-boxed bars on the timeline, hierarchical via parent_id)
CREATE TABLE IF NOT EXISTS milestones (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	parent_id TEXT,
	title TEXT NOT NULL,
	start_at DATETIME NOT NULL,
	end_at DATETIME NOT NULL,
	duration_days INTEGER NOT NULL DEFAULT 0,
	indent INTEGER NOT NULL DEFAULT 0,
	completed INTEGER NOT NULL DEFAULT 0 CHECK(completed BETWEEN 0 AND 100),
	editable BOOLEAN NOT NULL DEFAULT 1,
	deletable BOOLEAN NOT NULL DEFAULT 1,
	is_expanded BOOLEAN NOT NULL DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
	FOREIGN KEY (parent_id) REFERENCES milestones(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_milestones_project ON milestones(project_id, start_at);

-- Dependency edges (milestone_id depends on depends_on_id)
CREATE TABLE IF NOT EXISTS milestone_dependencies (
	milestone_id TEXT NOT NULL,
	depends_on_id TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (milestone_id, depends_on_id),
	FOREIGN KEY (milestone_id) REFERENCES milestones(id) ON DELETE CASCADE,
	FOREIGN KEY (depends_on_id) REFERENCES milestones(id) ON DELETE CASCADE
);

-- Audit log of milestone/project mutations
CREATE TABLE IF NOT EXISTS audit_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	entity_type TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete')),
	field_name TEXT,
	old_value TEXT,
	new_value TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// GetSchemaSQL returns the authoritative schema for tests and fresh installs.
func GetSchemaSQL() string {
	return SchemaSQL
}
