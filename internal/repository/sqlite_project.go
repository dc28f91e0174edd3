package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aka1453/promin/internal/db"
	"github.com/aka1453/promin/internal/domain"
)

// projectColumns is the canonical SELECT column list for projects.
const projectColumns = `id, name, planned_start, planned_end, actual_start, actual_end,
		planned_progress, actual_progress, budgeted_cost, actual_cost, status, created_at, updated_at`

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		nullableTimeToString(p.PlannedStart, dateLayout),
		nullableTimeToString(p.PlannedEnd, dateLayout),
		nullableTimeToString(p.ActualStart, dateLayout),
		nullableTimeToString(p.ActualEnd, dateLayout),
		p.PlannedProgress,
		p.ActualProgress,
		int64(p.BudgetedCost),
		int64(p.ActualCost),
		string(p.Status),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanProject(row)
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := r.scanProjectFromRows(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) UpdateRollup(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET planned_start = ?, planned_end = ?, actual_start = ?, actual_end = ?,
		planned_progress = ?, actual_progress = ?, budgeted_cost = ?, actual_cost = ?, status = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		nullableTimeToString(p.PlannedStart, dateLayout),
		nullableTimeToString(p.PlannedEnd, dateLayout),
		nullableTimeToString(p.ActualStart, dateLayout),
		nullableTimeToString(p.ActualEnd, dateLayout),
		p.PlannedProgress,
		p.ActualProgress,
		int64(p.BudgetedCost),
		int64(p.ActualCost),
		string(p.Status),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project rollup: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM projects WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

// scanProject scans a single project from a *sql.Row.
func (r *SQLiteProjectRepo) scanProject(row *sql.Row) (*domain.Project, error) {
	var p domain.Project
	var statusStr string
	var plannedStartStr, plannedEndStr, actualStartStr, actualEndStr sql.NullString
	var budgetedCost, actualCost int64
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&p.ID, &p.Name, &plannedStartStr, &plannedEndStr, &actualStartStr, &actualEndStr,
		&p.PlannedProgress, &p.ActualProgress, &budgetedCost, &actualCost,
		&statusStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	return r.populateProject(&p, statusStr, plannedStartStr, plannedEndStr, actualStartStr, actualEndStr,
		budgetedCost, actualCost, createdAtStr, updatedAtStr)
}

// scanProjectFromRows scans a project from *sql.Rows.
func (r *SQLiteProjectRepo) scanProjectFromRows(rows *sql.Rows) (*domain.Project, error) {
	var p domain.Project
	var statusStr string
	var plannedStartStr, plannedEndStr, actualStartStr, actualEndStr sql.NullString
	var budgetedCost, actualCost int64
	var createdAtStr, updatedAtStr string

	err := rows.Scan(
		&p.ID, &p.Name, &plannedStartStr, &plannedEndStr, &actualStartStr, &actualEndStr,
		&p.PlannedProgress, &p.ActualProgress, &budgetedCost, &actualCost,
		&statusStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning project row: %w", err)
	}

	return r.populateProject(&p, statusStr, plannedStartStr, plannedEndStr, actualStartStr, actualEndStr,
		budgetedCost, actualCost, createdAtStr, updatedAtStr)
}

// populateProject fills in parsed fields after scanning raw values.
func (r *SQLiteProjectRepo) populateProject(
	p *domain.Project,
	statusStr string,
	plannedStartStr, plannedEndStr, actualStartStr, actualEndStr sql.NullString,
	budgetedCost, actualCost int64,
	createdAtStr, updatedAtStr string,
) (*domain.Project, error) {
	p.Status = domain.Status(statusStr)
	p.PlannedStart = parseNullableTime(plannedStartStr, dateLayout)
	p.PlannedEnd = parseNullableTime(plannedEndStr, dateLayout)
	p.ActualStart = parseNullableTime(actualStartStr, dateLayout)
	p.ActualEnd = parseNullableTime(actualEndStr, dateLayout)
	p.BudgetedCost = domain.Cents(budgetedCost)
	p.ActualCost = domain.Cents(actualCost)

	var parseErr error
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return p, nil
}
