// Package persist optionally mirrors every cycle's CPU state into a
// SQLite database, alongside the two mandatory disassembly.txt and
// simulation.txt output files. It follows the batching/atexit-flush
// shape of akita's SQLiteTraceWriter.
package persist

import (
	"database/sql"
	"fmt"

	// Registers the sqlite3 driver with database/sql.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/spimdf/timing/pipeline"
)

// CycleRecord is one cycle's worth of state, as persisted.
type CycleRecord struct {
	Cycle  uint64
	PC     uint32
	Broken bool
}

// SQLiteWriter batches CycleRecords and flushes them to a SQLite
// database in transactions, registering a final flush at process exit
// so a batch in flight when the run ends is never silently dropped.
type SQLiteWriter struct {
	db        *sql.DB
	statement *sql.Stmt

	path      string
	batch     []CycleRecord
	batchSize int
}

// NewSQLiteWriter creates a writer backed by path. If path is empty, a
// unique filename is generated with xid so concurrent runs never
// collide.
func NewSQLiteWriter(path string) *SQLiteWriter {
	if path == "" {
		path = xid.New().String() + ".db"
	}

	w := &SQLiteWriter{path: path, batchSize: 1000}
	atexit.Register(func() { w.Flush() })
	return w
}

// Open establishes the database connection and creates the cycles
// table if it does not already exist.
func (w *SQLiteWriter) Open() error {
	db, err := sql.Open("sqlite3", w.path)
	if err != nil {
		return fmt.Errorf("persist: opening %s: %w", w.path, err)
	}
	w.db = db

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS cycles (
		cycle INTEGER PRIMARY KEY,
		pc INTEGER,
		broken INTEGER
	)`)
	if err != nil {
		return fmt.Errorf("persist: creating cycles table: %w", err)
	}

	stmt, err := db.Prepare(`INSERT INTO cycles (cycle, pc, broken) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("persist: preparing insert: %w", err)
	}
	w.statement = stmt

	return nil
}

// WriteCycle buffers cpu's current state, flushing once the batch
// fills. It never fails on its own; a batch that can't be written
// is retried on the next flush rather than aborting the run.
func (w *SQLiteWriter) WriteCycle(cpu *pipeline.CPU) error {
	w.batch = append(w.batch, CycleRecord{
		Cycle:  cpu.Cycle() - 1,
		PC:     cpu.Fetch.PC(),
		Broken: cpu.Fetch.Broken(),
	})
	if len(w.batch) >= w.batchSize {
		w.Flush()
	}
	return nil
}

// Flush writes every buffered record to the database in one
// transaction.
func (w *SQLiteWriter) Flush() {
	if len(w.batch) == 0 || w.db == nil {
		return
	}

	tx, err := w.db.Begin()
	if err != nil {
		return
	}

	for _, rec := range w.batch {
		broken := 0
		if rec.Broken {
			broken = 1
		}
		if _, err := tx.Stmt(w.statement).Exec(rec.Cycle, rec.PC, broken); err != nil {
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		return
	}
	w.batch = nil
}

// Close flushes any remaining records and closes the database.
func (w *SQLiteWriter) Close() error {
	w.Flush()
	if w.db == nil {
		return nil
	}
	return w.db.Close()
}
