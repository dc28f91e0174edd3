package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aka1453/promin/internal/db"
	"github.com/aka1453/promin/internal/domain"
)

// milestoneColumns is the canonical SELECT column list for milestones.
const milestoneColumns = `id, project_id, title, weight, planned_start, planned_end,
		actual_start, actual_end, planned_progress, actual_progress,
		budgeted_cost, actual_cost, status, created_at, updated_at`

// SQLiteMilestoneRepo implements MilestoneRepo using a SQLite database.
type SQLiteMilestoneRepo struct {
	db db.DBTX
}

// NewSQLiteMilestoneRepo creates a new SQLiteMilestoneRepo.
func NewSQLiteMilestoneRepo(conn db.DBTX) *SQLiteMilestoneRepo {
	return &SQLiteMilestoneRepo{db: conn}
}

func (r *SQLiteMilestoneRepo) Create(ctx context.Context, m *domain.Milestone) error {
	query := `INSERT INTO milestones (` + milestoneColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.ProjectID,
		m.Title,
		m.Weight,
		nullableTimeToString(m.PlannedStart, dateLayout),
		nullableTimeToString(m.PlannedEnd, dateLayout),
		nullableTimeToString(m.ActualStart, dateLayout),
		nullableTimeToString(m.ActualEnd, dateLayout),
		m.PlannedProgress,
		m.ActualProgress,
		int64(m.BudgetedCost),
		int64(m.ActualCost),
		string(m.Status),
		m.CreatedAt.Format(time.RFC3339),
		m.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting milestone: %w", err)
	}
	return nil
}

func (r *SQLiteMilestoneRepo) GetByID(ctx context.Context, id string) (*domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanMilestone(row)
}

func (r *SQLiteMilestoneRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE project_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing milestones by project: %w", err)
	}
	defer rows.Close()
	return r.scanMilestones(rows)
}

func (r *SQLiteMilestoneRepo) Update(ctx context.Context, m *domain.Milestone) error {
	query := `UPDATE milestones SET title = ?, weight = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		m.Title,
		m.Weight,
		m.UpdatedAt.Format(time.RFC3339),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating milestone: %w", err)
	}
	return nil
}

func (r *SQLiteMilestoneRepo) UpdateRollup(ctx context.Context, m *domain.Milestone) error {
	query := `UPDATE milestones SET planned_start = ?, planned_end = ?, actual_start = ?, actual_end = ?,
		planned_progress = ?, actual_progress = ?, budgeted_cost = ?, actual_cost = ?, status = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		nullableTimeToString(m.PlannedStart, dateLayout),
		nullableTimeToString(m.PlannedEnd, dateLayout),
		nullableTimeToString(m.ActualStart, dateLayout),
		nullableTimeToString(m.ActualEnd, dateLayout),
		m.PlannedProgress,
		m.ActualProgress,
		int64(m.BudgetedCost),
		int64(m.ActualCost),
		string(m.Status),
		m.UpdatedAt.Format(time.RFC3339),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating milestone rollup: %w", err)
	}
	return nil
}

func (r *SQLiteMilestoneRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM milestones WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting milestone: %w", err)
	}
	return nil
}

// scanMilestone scans a single milestone from a *sql.Row.
func (r *SQLiteMilestoneRepo) scanMilestone(row *sql.Row) (*domain.Milestone, error) {
	var m domain.Milestone
	var statusStr string
	var plannedStartStr, plannedEndStr, actualStartStr, actualEndStr sql.NullString
	var budgetedCost, actualCost int64
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&m.ID, &m.ProjectID, &m.Title, &m.Weight, &plannedStartStr, &plannedEndStr,
		&actualStartStr, &actualEndStr, &m.PlannedProgress, &m.ActualProgress,
		&budgetedCost, &actualCost, &statusStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("milestone: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning milestone: %w", err)
	}

	return r.populateMilestone(&m, statusStr, plannedStartStr, plannedEndStr, actualStartStr, actualEndStr,
		budgetedCost, actualCost, createdAtStr, updatedAtStr)
}

// scanMilestones scans multiple milestones from *sql.Rows.
func (r *SQLiteMilestoneRepo) scanMilestones(rows *sql.Rows) ([]*domain.Milestone, error) {
	var milestones []*domain.Milestone
	for rows.Next() {
		var m domain.Milestone
		var statusStr string
		var plannedStartStr, plannedEndStr, actualStartStr, actualEndStr sql.NullString
		var budgetedCost, actualCost int64
		var createdAtStr, updatedAtStr string

		err := rows.Scan(
			&m.ID, &m.ProjectID, &m.Title, &m.Weight, &plannedStartStr, &plannedEndStr,
			&actualStartStr, &actualEndStr, &m.PlannedProgress, &m.ActualProgress,
			&budgetedCost, &actualCost, &statusStr, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning milestone row: %w", err)
		}

		populated, err := r.populateMilestone(&m, statusStr, plannedStartStr, plannedEndStr,
			actualStartStr, actualEndStr, budgetedCost, actualCost, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		milestones = append(milestones, populated)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating milestones: %w", err)
	}
	return milestones, nil
}

// populateMilestone fills in parsed fields after scanning raw values.
func (r *SQLiteMilestoneRepo) populateMilestone(
	m *domain.Milestone,
	statusStr string,
	plannedStartStr, plannedEndStr, actualStartStr, actualEndStr sql.NullString,
	budgetedCost, actualCost int64,
	createdAtStr, updatedAtStr string,
) (*domain.Milestone, error) {
	m.Status = domain.Status(statusStr)
	m.PlannedStart = parseNullableTime(plannedStartStr, dateLayout)
	m.PlannedEnd = parseNullableTime(plannedEndStr, dateLayout)
	m.ActualStart = parseNullableTime(actualStartStr, dateLayout)
	m.ActualEnd = parseNullableTime(actualEndStr, dateLayout)
	m.BudgetedCost = domain.Cents(budgetedCost)
	m.ActualCost = domain.Cents(actualCost)

	var parseErr error
	m.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	m.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return m, nil
}
