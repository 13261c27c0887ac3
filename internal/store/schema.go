package store

const schema = `
CREATE TABLE IF NOT EXISTS activity_categories (
    category_id INTEGER PRIMARY KEY AUTOINCREMENT,
    category_name TEXT NOT NULL UNIQUE,
    unit TEXT NOT NULL,
    carbon_factor REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS daily_activities (
    activity_id INTEGER PRIMARY KEY AUTOINCREMENT,
    category_id INTEGER NOT NULL,
    activity_date DATE NOT NULL,
    quantity REAL NOT NULL,
    logged_at TIMESTAMP NOT NULL,
    FOREIGN KEY (category_id) REFERENCES activity_categories(category_id)
);

CREATE INDEX IF NOT EXISTS idx_activities_category ON daily_activities(category_id);
CREATE INDEX IF NOT EXISTS idx_activities_date ON daily_activities(activity_date);
`
