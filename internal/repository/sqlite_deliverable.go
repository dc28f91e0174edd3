package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aka1453/promin/internal/db"
	"github.com/aka1453/promin/internal/domain"
)

// deliverableColumns is the canonical SELECT column list for deliverables.
const deliverableColumns = `id, task_id, title, weight, planned_start, planned_end,
		budgeted_cost, actual_cost, is_done, completed_at, created_at, updated_at`

// SQLiteDeliverableRepo implements DeliverableRepo using a SQLite database.
type SQLiteDeliverableRepo struct {
	db db.DBTX
}

// NewSQLiteDeliverableRepo creates a new SQLiteDeliverableRepo.
func NewSQLiteDeliverableRepo(conn db.DBTX) *SQLiteDeliverableRepo {
	return &SQLiteDeliverableRepo{db: conn}
}

func (r *SQLiteDeliverableRepo) Create(ctx context.Context, d *domain.Deliverable) error {
	query := `INSERT INTO deliverables (` + deliverableColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.TaskID,
		d.Title,
		d.Weight,
		nullableTimeToString(d.PlannedStart, dateLayout),
		nullableTimeToString(d.PlannedEnd, dateLayout),
		int64(d.BudgetedCost),
		int64(d.ActualCost),
		boolToInt(d.IsDone),
		nullableTimeToString(d.CompletedAt, time.RFC3339),
		d.CreatedAt.Format(time.RFC3339),
		d.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting deliverable: %w", err)
	}
	return nil
}

func (r *SQLiteDeliverableRepo) GetByID(ctx context.Context, id string) (*domain.Deliverable, error) {
	query := `SELECT ` + deliverableColumns + ` FROM deliverables WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanDeliverable(row)
}

func (r *SQLiteDeliverableRepo) ListByTask(ctx context.Context, taskID string) ([]*domain.Deliverable, error) {
	query := `SELECT ` + deliverableColumns + ` FROM deliverables WHERE task_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing deliverables by task: %w", err)
	}
	defer rows.Close()
	return r.scanDeliverables(rows)
}

func (r *SQLiteDeliverableRepo) Update(ctx context.Context, d *domain.Deliverable) error {
	query := `UPDATE deliverables SET title = ?, weight = ?, planned_start = ?, planned_end = ?,
		budgeted_cost = ?, actual_cost = ?, is_done = ?, completed_at = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		d.Title,
		d.Weight,
		nullableTimeToString(d.PlannedStart, dateLayout),
		nullableTimeToString(d.PlannedEnd, dateLayout),
		int64(d.BudgetedCost),
		int64(d.ActualCost),
		boolToInt(d.IsDone),
		nullableTimeToString(d.CompletedAt, time.RFC3339),
		d.UpdatedAt.Format(time.RFC3339),
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating deliverable: %w", err)
	}
	return nil
}

func (r *SQLiteDeliverableRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM deliverables WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting deliverable: %w", err)
	}
	return nil
}

// scanDeliverable scans a single deliverable from a *sql.Row.
func (r *SQLiteDeliverableRepo) scanDeliverable(row *sql.Row) (*domain.Deliverable, error) {
	var d domain.Deliverable
	var plannedStartStr, plannedEndStr, completedAtStr sql.NullString
	var budgetedCost, actualCost int64
	var isDoneInt int
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&d.ID, &d.TaskID, &d.Title, &d.Weight, &plannedStartStr, &plannedEndStr,
		&budgetedCost, &actualCost, &isDoneInt, &completedAtStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("deliverable: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning deliverable: %w", err)
	}

	return r.populateDeliverable(&d, plannedStartStr, plannedEndStr, completedAtStr,
		budgetedCost, actualCost, isDoneInt, createdAtStr, updatedAtStr)
}

// scanDeliverables scans multiple deliverables from *sql.Rows.
func (r *SQLiteDeliverableRepo) scanDeliverables(rows *sql.Rows) ([]*domain.Deliverable, error) {
	var items []*domain.Deliverable
	for rows.Next() {
		var d domain.Deliverable
		var plannedStartStr, plannedEndStr, completedAtStr sql.NullString
		var budgetedCost, actualCost int64
		var isDoneInt int
		var createdAtStr, updatedAtStr string

		err := rows.Scan(
			&d.ID, &d.TaskID, &d.Title, &d.Weight, &plannedStartStr, &plannedEndStr,
			&budgetedCost, &actualCost, &isDoneInt, &completedAtStr,
			&createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning deliverable row: %w", err)
		}

		populated, err := r.populateDeliverable(&d, plannedStartStr, plannedEndStr, completedAtStr,
			budgetedCost, actualCost, isDoneInt, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		items = append(items, populated)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating deliverables: %w", err)
	}
	return items, nil
}

// populateDeliverable fills in parsed fields after scanning raw values.
func (r *SQLiteDeliverableRepo) populateDeliverable(
	d *domain.Deliverable,
	plannedStartStr, plannedEndStr, completedAtStr sql.NullString,
	budgetedCost, actualCost int64,
	isDoneInt int,
	createdAtStr, updatedAtStr string,
) (*domain.Deliverable, error) {
	d.PlannedStart = parseNullableTime(plannedStartStr, dateLayout)
	d.PlannedEnd = parseNullableTime(plannedEndStr, dateLayout)
	d.CompletedAt = parseNullableTime(completedAtStr, time.RFC3339)
	d.BudgetedCost = domain.Cents(budgetedCost)
	d.ActualCost = domain.Cents(actualCost)
	d.IsDone = intToBool(isDoneInt)

	var parseErr error
	d.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	d.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return d, nil
}
