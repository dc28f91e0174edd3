package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aka1453/promin/internal/db"
	"github.com/aka1453/promin/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, milestone_id, title, weight, sequence_group,
		planned_start, planned_end, actual_start, actual_end,
		planned_progress, progress, budgeted_cost, actual_cost, status, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.MilestoneID,
		t.Title,
		t.Weight,
		t.SequenceGroup,
		nullableTimeToString(t.PlannedStart, dateLayout),
		nullableTimeToString(t.PlannedEnd, dateLayout),
		nullableTimeToString(t.ActualStart, dateLayout),
		nullableTimeToString(t.ActualEnd, dateLayout),
		t.PlannedProgress,
		t.Progress,
		int64(t.BudgetedCost),
		int64(t.ActualCost),
		string(t.Status),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanTask(row)
}

func (r *SQLiteTaskRepo) ListByMilestone(ctx context.Context, milestoneID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE milestone_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, milestoneID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by milestone: %w", err)
	}
	defer rows.Close()
	return r.scanTasks(rows)
}

// Update persists user-editable fields plus the lifecycle dates owned by the
// explicit Start/Complete/Reopen actions.
func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET title = ?, weight = ?, sequence_group = ?,
		actual_start = ?, actual_end = ?, status = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.Weight,
		t.SequenceGroup,
		nullableTimeToString(t.ActualStart, dateLayout),
		nullableTimeToString(t.ActualEnd, dateLayout),
		string(t.Status),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return nil
}

// UpdateRollup persists the derived fields in one statement. actual_start is
// deliberately absent from the column list.
func (r *SQLiteTaskRepo) UpdateRollup(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET planned_start = ?, planned_end = ?, actual_end = ?,
		planned_progress = ?, progress = ?, budgeted_cost = ?, actual_cost = ?, status = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		nullableTimeToString(t.PlannedStart, dateLayout),
		nullableTimeToString(t.PlannedEnd, dateLayout),
		nullableTimeToString(t.ActualEnd, dateLayout),
		t.PlannedProgress,
		t.Progress,
		int64(t.BudgetedCost),
		int64(t.ActualCost),
		string(t.Status),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task rollup: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tasks WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

// scanTask scans a single task from a *sql.Row.
func (r *SQLiteTaskRepo) scanTask(row *sql.Row) (*domain.Task, error) {
	var t domain.Task
	var statusStr string
	var plannedStartStr, plannedEndStr, actualStartStr, actualEndStr sql.NullString
	var budgetedCost, actualCost int64
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&t.ID, &t.MilestoneID, &t.Title, &t.Weight, &t.SequenceGroup,
		&plannedStartStr, &plannedEndStr, &actualStartStr, &actualEndStr,
		&t.PlannedProgress, &t.Progress, &budgetedCost, &actualCost,
		&statusStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	return r.populateTask(&t, statusStr, plannedStartStr, plannedEndStr, actualStartStr, actualEndStr,
		budgetedCost, actualCost, createdAtStr, updatedAtStr)
}

// scanTasks scans multiple tasks from *sql.Rows.
func (r *SQLiteTaskRepo) scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		var statusStr string
		var plannedStartStr, plannedEndStr, actualStartStr, actualEndStr sql.NullString
		var budgetedCost, actualCost int64
		var createdAtStr, updatedAtStr string

		err := rows.Scan(
			&t.ID, &t.MilestoneID, &t.Title, &t.Weight, &t.SequenceGroup,
			&plannedStartStr, &plannedEndStr, &actualStartStr, &actualEndStr,
			&t.PlannedProgress, &t.Progress, &budgetedCost, &actualCost,
			&statusStr, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}

		populated, err := r.populateTask(&t, statusStr, plannedStartStr, plannedEndStr,
			actualStartStr, actualEndStr, budgetedCost, actualCost, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, populated)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// populateTask fills in parsed fields after scanning raw values.
func (r *SQLiteTaskRepo) populateTask(
	t *domain.Task,
	statusStr string,
	plannedStartStr, plannedEndStr, actualStartStr, actualEndStr sql.NullString,
	budgetedCost, actualCost int64,
	createdAtStr, updatedAtStr string,
) (*domain.Task, error) {
	t.Status = domain.Status(statusStr)
	t.PlannedStart = parseNullableTime(plannedStartStr, dateLayout)
	t.PlannedEnd = parseNullableTime(plannedEndStr, dateLayout)
	t.ActualStart = parseNullableTime(actualStartStr, dateLayout)
	t.ActualEnd = parseNullableTime(actualEndStr, dateLayout)
	t.BudgetedCost = domain.Cents(budgetedCost)
	t.ActualCost = domain.Cents(actualCost)

	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return t, nil
}
