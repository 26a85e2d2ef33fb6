package storage

const schema = `
-- The 'namespaces' table is a key-value store. Each row holds one JSON
-- document (library, ranges or srs) that is rewritten in full on change.
CREATE TABLE IF NOT EXISTS namespaces (
    name TEXT PRIMARY KEY,
    data BLOB NOT NULL,
    updated_at DATETIME NOT NULL
);

-- The 'sources' table tracks chart packs, either a local directory or a git repository.
CREATE TABLE IF NOT EXISTS sources (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL UNIQUE,
    type TEXT NOT NULL DEFAULT 'local', -- 'local' or 'git'
    last_scanned DATETIME
);
`
