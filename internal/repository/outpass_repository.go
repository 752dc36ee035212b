package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/campuskeep/outpass-api/internal/models"
)

const outpassColumns = `o.id, o.resident_id, o.reason, o.leave_start_at, o.expected_return_at, o.destination,
	o.emergency_contact_name, o.emergency_contact_number, o.emergency_contact_relation,
	o.status, o.reviewer_id, o.review_comments, o.reviewed_at,
	o.departure_officer_id, o.departure_comments, o.actual_departure_at,
	o.return_officer_id, o.return_comments, o.actual_return_at,
	o.is_late_return, o.late_return_reason, o.created_at,
	u.full_name AS resident_name, p.roll_number, p.hostel_name`

const outpassJoin = ` FROM outpasses o
	JOIN resident_profiles p ON p.user_id = o.resident_id
	JOIN users u ON u.id = o.resident_id`

// OutpassRepository provides database access to outpass records. Status
// transitions are compare-and-set: the UPDATE carries the expected current
// status, so of two concurrent writers only one succeeds and the loser
// observes zero affected rows.
type OutpassRepository struct {
	db *sqlx.DB
}

// NewOutpassRepository creates a new instance of OutpassRepository.
func NewOutpassRepository(db *sqlx.DB) *OutpassRepository {
	return &OutpassRepository{db: db}
}

// Create inserts a new outpass record in PENDING state.
func (r *OutpassRepository) Create(ctx context.Context, o *models.Outpass) error {
	if o.ID == "" {
		o.ID = newID()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO outpasses (id, resident_id, reason, leave_start_at, expected_return_at, destination,
			emergency_contact_name, emergency_contact_number, emergency_contact_relation, status, created_at)
		VALUES (:id, :resident_id, :reason, :leave_start_at, :expected_return_at, :destination,
			:emergency_contact_name, :emergency_contact_number, :emergency_contact_relation, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, o); err != nil {
		return fmt.Errorf("create outpass: %w", translateConstraint(err))
	}
	return nil
}

// FindByID returns an outpass joined with its resident's name and hostel.
func (r *OutpassRepository) FindByID(ctx context.Context, id string) (*models.Outpass, error) {
	query := `SELECT ` + outpassColumns + outpassJoin + ` WHERE o.id = $1 LIMIT 1`
	var o models.Outpass
	if err := r.db.GetContext(ctx, &o, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find outpass by id: %w", err)
	}
	return &o, nil
}

// ListByResident returns a resident's records, newest first.
func (r *OutpassRepository) ListByResident(ctx context.Context, residentID string) ([]models.Outpass, error) {
	query := `SELECT ` + outpassColumns + outpassJoin + ` WHERE o.resident_id = $1 ORDER BY o.created_at DESC`
	var list []models.Outpass
	if err := r.db.SelectContext(ctx, &list, query, residentID); err != nil {
		return nil, fmt.Errorf("list outpasses by resident: %w", err)
	}
	return list, nil
}

// ListByStatus returns records in one state, optionally restricted to a
// hostel. An empty hostel means unscoped (gate operations, admins).
func (r *OutpassRepository) ListByStatus(ctx context.Context, status models.OutpassStatus, hostel string) ([]models.Outpass, error) {
	query := `SELECT ` + outpassColumns + outpassJoin + ` WHERE o.status = $1`
	args := []interface{}{status}
	if hostel != "" {
		query += ` AND p.hostel_name = $2`
		args = append(args, hostel)
	}
	query += ` ORDER BY o.created_at DESC`

	var list []models.Outpass
	if err := r.db.SelectContext(ctx, &list, query, args...); err != nil {
		return nil, fmt.Errorf("list outpasses by status: %w", err)
	}
	return list, nil
}

// ListAll returns every record, optionally hostel-scoped, newest first.
func (r *OutpassRepository) ListAll(ctx context.Context, hostel string) ([]models.Outpass, error) {
	query := `SELECT ` + outpassColumns + outpassJoin
	var args []interface{}
	if hostel != "" {
		query += ` WHERE p.hostel_name = $1`
		args = append(args, hostel)
	}
	query += ` ORDER BY o.created_at DESC`

	var list []models.Outpass
	if err := r.db.SelectContext(ctx, &list, query, args...); err != nil {
		return nil, fmt.Errorf("list outpasses: %w", err)
	}
	return list, nil
}

// CountByStatus counts records per state, optionally hostel-scoped.
func (r *OutpassRepository) CountByStatus(ctx context.Context, status models.OutpassStatus, hostel string) (int, error) {
	query := `SELECT COUNT(*)` + outpassJoin + ` WHERE o.status = $1`
	args := []interface{}{status}
	if hostel != "" {
		query += ` AND p.hostel_name = $2`
		args = append(args, hostel)
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count outpasses by status: %w", err)
	}
	return count, nil
}

// CountLateReturns counts completed records flagged late, optionally
// hostel-scoped.
func (r *OutpassRepository) CountLateReturns(ctx context.Context, hostel string) (int, error) {
	query := `SELECT COUNT(*)` + outpassJoin + ` WHERE o.is_late_return = TRUE`
	var args []interface{}
	if hostel != "" {
		query += ` AND p.hostel_name = $1`
		args = append(args, hostel)
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count late returns: %w", err)
	}
	return count, nil
}

// CountReturnedBetween counts records whose actual return falls within
// [from, to).
func (r *OutpassRepository) CountReturnedBetween(ctx context.Context, from, to time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM outpasses o WHERE o.actual_return_at >= $1 AND o.actual_return_at < $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, from, to); err != nil {
		return 0, fmt.Errorf("count returns in window: %w", err)
	}
	return count, nil
}

// ListDepartedBetween returns records that departed within [from, to),
// newest departure first.
func (r *OutpassRepository) ListDepartedBetween(ctx context.Context, from, to time.Time) ([]models.Outpass, error) {
	query := `SELECT ` + outpassColumns + outpassJoin +
		` WHERE o.actual_departure_at >= $1 AND o.actual_departure_at < $2 ORDER BY o.actual_departure_at DESC`
	var list []models.Outpass
	if err := r.db.SelectContext(ctx, &list, query, from, to); err != nil {
		return nil, fmt.Errorf("list departures in window: %w", err)
	}
	return list, nil
}

// ListReturnedBetween returns records that returned within [from, to),
// newest return first.
func (r *OutpassRepository) ListReturnedBetween(ctx context.Context, from, to time.Time) ([]models.Outpass, error) {
	query := `SELECT ` + outpassColumns + outpassJoin +
		` WHERE o.actual_return_at >= $1 AND o.actual_return_at < $2 ORDER BY o.actual_return_at DESC`
	var list []models.Outpass
	if err := r.db.SelectContext(ctx, &list, query, from, to); err != nil {
		return nil, fmt.Errorf("list returns in window: %w", err)
	}
	return list, nil
}

// ListExpectedReturnBetween returns ACTIVE records whose expected return
// falls within [from, to), soonest first.
func (r *OutpassRepository) ListExpectedReturnBetween(ctx context.Context, from, to time.Time) ([]models.Outpass, error) {
	query := `SELECT ` + outpassColumns + outpassJoin +
		` WHERE o.status = 'ACTIVE' AND o.expected_return_at >= $1 AND o.expected_return_at < $2 ORDER BY o.expected_return_at ASC`
	var list []models.Outpass
	if err := r.db.SelectContext(ctx, &list, query, from, to); err != nil {
		return nil, fmt.Errorf("list expected returns in window: %w", err)
	}
	return list, nil
}

// ListRecentMovement returns records with gate activity, most recent
// movement first, optionally hostel-scoped.
func (r *OutpassRepository) ListRecentMovement(ctx context.Context, hostel string, limit int) ([]models.Outpass, error) {
	query := `SELECT ` + outpassColumns + outpassJoin +
		` WHERE (o.actual_departure_at IS NOT NULL OR o.actual_return_at IS NOT NULL)`
	args := []interface{}{limit}
	if hostel != "" {
		query += ` AND p.hostel_name = $2`
		args = append(args, hostel)
	}
	query += ` ORDER BY COALESCE(o.actual_return_at, o.actual_departure_at) DESC LIMIT $1`

	var list []models.Outpass
	if err := r.db.SelectContext(ctx, &list, query, args...); err != nil {
		return nil, fmt.Errorf("list recent movement: %w", err)
	}
	return list, nil
}

// UpdateContent overwrites the resident-editable fields. The record must
// still be PENDING; an edit racing a review loses.
func (r *OutpassRepository) UpdateContent(ctx context.Context, o *models.Outpass) (bool, error) {
	const query = `UPDATE outpasses SET reason = :reason, leave_start_at = :leave_start_at, expected_return_at = :expected_return_at,
			destination = :destination, emergency_contact_name = :emergency_contact_name,
			emergency_contact_number = :emergency_contact_number, emergency_contact_relation = :emergency_contact_relation
		WHERE id = :id AND status = 'PENDING'`
	res, err := r.db.NamedExecContext(ctx, query, o)
	if err != nil {
		return false, fmt.Errorf("update outpass content: %w", err)
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}

// Cancel transitions a record to CANCELLED from the expected status.
func (r *OutpassRepository) Cancel(ctx context.Context, id string, expected models.OutpassStatus) (bool, error) {
	const query = `UPDATE outpasses SET status = 'CANCELLED' WHERE id = $1 AND status = $2`
	res, err := r.db.ExecContext(ctx, query, id, expected)
	if err != nil {
		return false, fmt.Errorf("cancel outpass: %w", err)
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}

// Review stamps the reviewer exactly once during PENDING -> APPROVED/REJECTED.
func (r *OutpassRepository) Review(ctx context.Context, id string, status models.OutpassStatus, reviewerID, comments string, reviewedAt time.Time) (bool, error) {
	const query = `UPDATE outpasses SET status = $2, reviewer_id = $3, review_comments = $4, reviewed_at = $5
		WHERE id = $1 AND status = 'PENDING'`
	res, err := r.db.ExecContext(ctx, query, id, status, reviewerID, comments, reviewedAt)
	if err != nil {
		return false, fmt.Errorf("review outpass: %w", err)
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}

// MarkDeparture stamps the officer exactly once during APPROVED -> ACTIVE.
func (r *OutpassRepository) MarkDeparture(ctx context.Context, id, officerID, comments string, departedAt time.Time) (bool, error) {
	const query = `UPDATE outpasses SET status = 'ACTIVE', departure_officer_id = $2, departure_comments = $3, actual_departure_at = $4
		WHERE id = $1 AND status = 'APPROVED'`
	res, err := r.db.ExecContext(ctx, query, id, officerID, comments, departedAt)
	if err != nil {
		return false, fmt.Errorf("mark departure: %w", err)
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}

// ReturnStamp carries the ACTIVE -> COMPLETED transition fields.
type ReturnStamp struct {
	OfficerID        string
	Comments         string
	ReturnedAt       time.Time
	IsLateReturn     bool
	LateReturnReason *string
}

// MarkReturn stamps the return officer exactly once during ACTIVE -> COMPLETED.
func (r *OutpassRepository) MarkReturn(ctx context.Context, id string, stamp ReturnStamp) (bool, error) {
	const query = `UPDATE outpasses SET status = 'COMPLETED', return_officer_id = $2, return_comments = $3,
			actual_return_at = $4, is_late_return = $5, late_return_reason = $6
		WHERE id = $1 AND status = 'ACTIVE'`
	res, err := r.db.ExecContext(ctx, query, id, stamp.OfficerID, stamp.Comments, stamp.ReturnedAt, stamp.IsLateReturn, stamp.LateReturnReason)
	if err != nil {
		return false, fmt.Errorf("mark return: %w", err)
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}
