// Copyright 2024 The benchscore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchdb stores run reports in a SQL database, keeping a
// history of aggregate scores across runs. It's safe for concurrent
// use by multiple goroutines.
package benchdb

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/dcbench/benchscore/benchreport"
)

// DB is a handle to the score-history database.
type DB struct {
	sql *sql.DB
	// prepared statements
	insertRun   *sql.Stmt
	insertScore *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		return nil, err
	}
	if err := d.prepareStatements(driverName); err != nil {
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. This is used by the sqlite3 subpackage to
// enable foreign keys. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Label VARCHAR(255),
	Timestamp VARCHAR(64)
);
CREATE TABLE IF NOT EXISTS Scores (
	RunID BIGINT UNSIGNED,
	Benchmark VARCHAR(255),
	Score DOUBLE,
	HasScore BOOLEAN,
	ScoredOps INT,
	TotalOps INT,
	Note VARCHAR(1024),
	PRIMARY KEY (RunID, Benchmark),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements(driverName string) error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(Label, Timestamp) VALUES (?, ?)")
	if err != nil {
		return err
	}
	db.insertScore, err = db.sql.Prepare(
		"INSERT INTO Scores(RunID, Benchmark, Score, HasScore, ScoredOps, TotalOps, Note) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// SaveReport stores one run's report under label and returns the new
// run ID. The whole report is inserted in a single transaction so a
// failed save never leaves a partial run behind.
func (db *DB) SaveReport(ctx context.Context, label string, rep *benchreport.Report) (runID int64, err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	res, err := tx.Stmt(db.insertRun).ExecContext(ctx, label, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	runID, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for _, row := range rep.Rows {
		_, err = tx.Stmt(db.insertScore).ExecContext(ctx, runID, row.Benchmark,
			row.Score.Aggregate, row.Score.HasScore, row.Score.Scored(), row.Score.Total(), row.Note)
		if err != nil {
			return 0, err
		}
	}
	return runID, nil
}

// A HistoryEntry is one benchmark's score in one past run.
type HistoryEntry struct {
	RunID     int64
	Label     string
	Timestamp string
	Score     float64
	HasScore  bool
}

// History returns the saved scores for one benchmark, oldest first.
func (db *DB) History(ctx context.Context, benchmark string) ([]HistoryEntry, error) {
	rows, err := db.sql.QueryContext(ctx, `
		SELECT Runs.RunID, Runs.Label, Runs.Timestamp, Scores.Score, Scores.HasScore
		FROM Scores JOIN Runs ON Scores.RunID = Runs.RunID
		WHERE Scores.Benchmark = ?
		ORDER BY Runs.RunID`, benchmark)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.RunID, &e.Label, &e.Timestamp, &e.Score, &e.HasScore); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close closes the database connections, releasing any open
// resources.
func (db *DB) Close() error {
	if err := db.insertRun.Close(); err != nil {
		return err
	}
	if err := db.insertScore.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
