// Copyright 2024 The benchscore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlite3 provides the sqlite3 driver for benchdb. It must be
// imported for its side effects:
//
//	import _ "github.com/dcbench/benchscore/benchdb/sqlite3"
package sqlite3

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dcbench/benchscore/benchdb"
)

func init() {
	benchdb.RegisterOpenHook("sqlite3", func(db *sql.DB) error {
		_, err := db.Exec("PRAGMA foreign_keys = ON;")
		return err
	})
}
