package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Nader-Awad/COMP4050BAMBrazil/booking"
)

// ReservationStore is the sqlite-backed booking.Store. The
// insert-if-no-overlap check runs inside an IMMEDIATE transaction so
// the exclusion guarantee holds even across processes sharing the
// database file.
type ReservationStore struct {
	db *sql.DB
}

// OpenReservationsDB opens (and migrates) the reservations database.
// An empty path uses the default location under the config dir.
func OpenReservationsDB(path string) (*ReservationStore, error) {
	if path == "" {
		if _, err := ensureConfigDir(); err != nil {
			return nil, err
		}
		var err error
		path, err = ReservationsPath()
		if err != nil {
			return nil, err
		}
	}

	// _txlock=immediate makes write transactions take the database
	// lock at BEGIN, so the overlap check and insert are atomic.
	dsn := fmt.Sprintf("file:%s?_txlock=immediate&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	if err := ensureReservationsSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &ReservationStore{db: db}, nil
}

func (s *ReservationStore) Close() error {
	return s.db.Close()
}

func ensureReservationsSchema(db *sql.DB) error {
	createTable := `
CREATE TABLE IF NOT EXISTS reservations (
  id TEXT PRIMARY KEY,
  resource_id TEXT NOT NULL,
  date TEXT NOT NULL,
  slot_start INTEGER NOT NULL,
  slot_end INTEGER NOT NULL,
  title TEXT NOT NULL,
  group_name TEXT,
  attendees INTEGER,
  requester_id TEXT NOT NULL,
  requester_name TEXT,
  status TEXT NOT NULL,
  decided_by TEXT,
  decided_at TEXT,
  rejection_reason TEXT,
  created_at TEXT NOT NULL
);`

	if _, err := db.Exec(createTable); err != nil {
		return fmt.Errorf("create reservations table: %w", err)
	}

	if _, err := db.Exec("CREATE INDEX IF NOT EXISTS idx_reservations_partition ON reservations(resource_id, date);"); err != nil {
		return fmt.Errorf("create partition index: %w", err)
	}
	if _, err := db.Exec("CREATE INDEX IF NOT EXISTS idx_reservations_requester ON reservations(requester_id);"); err != nil {
		return fmt.Errorf("create requester index: %w", err)
	}

	return nil
}

const reservationColumns = `id, resource_id, date, slot_start, slot_end, title, group_name, attendees, requester_id, requester_name, status, decided_by, decided_at, rejection_reason, created_at`

func (s *ReservationStore) Insert(ctx context.Context, res *booking.Reservation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	// The storage boundary guards against approved rows only. Pending
	// rows may overlap here: concurrent admissions that raced past each
	// other are resolved by the approval re-check, not by the store.
	rows, err := tx.QueryContext(ctx, `
SELECT id FROM reservations
WHERE resource_id = ? AND date = ? AND status = 'Approved'
  AND NOT (slot_end <= ? OR slot_start >= ?)
ORDER BY slot_start, slot_end`,
		res.ResourceID, res.Date, res.SlotStart, res.SlotEnd)
	if err != nil {
		return fmt.Errorf("overlap check: %w", err)
	}
	var conflictIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("overlap check: %w", err)
		}
		conflictIDs = append(conflictIDs, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("overlap check: %w", err)
	}
	rows.Close()

	if len(conflictIDs) > 0 {
		return &booking.SlotConflictError{
			ResourceID:  res.ResourceID,
			Date:        res.Date,
			Interval:    res.Interval(),
			ConflictIDs: conflictIDs,
		}
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO reservations (`+reservationColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.ID,
		res.ResourceID,
		res.Date,
		res.SlotStart,
		res.SlotEnd,
		res.Title,
		nullString(res.GroupName),
		nullInt(res.Attendees),
		res.RequesterID,
		res.RequesterName,
		string(res.Status),
		nullString(res.DecidedBy),
		nullTime(res.DecidedAt),
		nullString(res.RejectionReason),
		res.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert reservation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert: %w", err)
	}
	return nil
}

func (s *ReservationStore) Get(ctx context.Context, id string) (*booking.Reservation, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE id = ?", id)
	res, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, booking.ErrNotFound
	}
	return res, err
}

func (s *ReservationStore) ListPartition(ctx context.Context, resourceID, date string) ([]*booking.Reservation, error) {
	return s.list(ctx, `
SELECT `+reservationColumns+` FROM reservations
WHERE resource_id = ? AND date = ? AND status != 'Rejected'
ORDER BY slot_start, slot_end`, resourceID, date)
}

func (s *ReservationStore) ListByRequester(ctx context.Context, requesterID string) ([]*booking.Reservation, error) {
	return s.list(ctx, `
SELECT `+reservationColumns+` FROM reservations
WHERE requester_id = ?
ORDER BY date, slot_start`, requesterID)
}

func (s *ReservationStore) list(ctx context.Context, query string, args ...any) ([]*booking.Reservation, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := []*booking.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reservations, nil
}

// UpdateStatus is conditional on the row still being Pending, closing
// the race with a concurrent decision.
func (s *ReservationStore) UpdateStatus(ctx context.Context, id string, to booking.Status, decidedBy string, decidedAt time.Time, reason string) (*booking.Reservation, error) {
	result, err := s.db.ExecContext(ctx, `
UPDATE reservations
SET status = ?, decided_by = ?, decided_at = ?, rejection_reason = ?
WHERE id = ? AND status = 'Pending'`,
		string(to), decidedBy, decidedAt.UTC().Format(time.RFC3339), nullString(reason), id)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	if affected == 0 {
		if _, err := s.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, booking.ErrInvalidTransition
	}
	return s.Get(ctx, id)
}

func (s *ReservationStore) UpdateDetails(ctx context.Context, id string, details booking.Details) (*booking.Reservation, error) {
	result, err := s.db.ExecContext(ctx, `
UPDATE reservations
SET title = ?, group_name = ?, attendees = ?
WHERE id = ?`,
		details.Title, nullString(details.GroupName), nullInt(details.Attendees), id)
	if err != nil {
		return nil, fmt.Errorf("update details: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update details: %w", err)
	}
	if affected == 0 {
		return nil, booking.ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *ReservationStore) Delete(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM reservations WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *ReservationStore) CountApproved(ctx context.Context, requesterID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reservations WHERE requester_id = ? AND status = 'Approved'",
		requesterID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*booking.Reservation, error) {
	var res booking.Reservation
	var groupName, requesterName, decidedBy, decidedAt, reason sql.NullString
	var attendees sql.NullInt64
	var status, createdAt string

	if err := row.Scan(
		&res.ID,
		&res.ResourceID,
		&res.Date,
		&res.SlotStart,
		&res.SlotEnd,
		&res.Title,
		&groupName,
		&attendees,
		&res.RequesterID,
		&requesterName,
		&status,
		&decidedBy,
		&decidedAt,
		&reason,
		&createdAt,
	); err != nil {
		return nil, err
	}

	res.Status = booking.Status(status)
	res.GroupName = groupName.String
	res.RequesterName = requesterName.String
	res.DecidedBy = decidedBy.String
	res.RejectionReason = reason.String
	res.Attendees = int(attendees.Int64)

	if decidedAt.Valid && decidedAt.String != "" {
		t, err := time.Parse(time.RFC3339, decidedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse decided_at: %w", err)
		}
		res.DecidedAt = &t
	}
	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	res.CreatedAt = created

	return &res, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
