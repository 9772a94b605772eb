package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/offer-composer/internal/types"
)

const employeeColumns = `id, user_name, first_name, last_name, employed_since, work_experience,
	scientific_assistant, student_assistant, authorization_level, rate_card_level, image,
	experience, project_ids`

func scanEmployee(row pgx.Row) (*types.Employee, error) {
	var e types.Employee
	var experience, projectIDs []byte
	err := row.Scan(&e.ID, &e.UserName, &e.FirstName, &e.LastName, &e.EmployedSince,
		&e.WorkExperience, &e.ScientificAssistant, &e.StudentAssistant,
		&e.AuthorizationLevel, &e.RateCardLevel, &e.Image, &experience, &projectIDs)
	if err != nil {
		return nil, err
	}
	if err := fromJSON(experience, &e.Experience); err != nil {
		return nil, fmt.Errorf("failed to decode experience of employee %s: %w", e.ID, err)
	}
	if err := fromJSON(projectIDs, &e.ProjectIDs); err != nil {
		return nil, fmt.Errorf("failed to decode project ids of employee %s: %w", e.ID, err)
	}
	return &e, nil
}

// GetEmployee retrieves an employee by ID
func (db *DB) GetEmployee(ctx context.Context, id uuid.UUID) (*types.Employee, error) {
	e, err := scanEmployee(db.pool.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

// GetEmployeeByUserName retrieves an employee by user name
func (db *DB) GetEmployeeByUserName(ctx context.Context, userName string) (*types.Employee, error) {
	e, err := scanEmployee(db.pool.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE user_name = $1`, userName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

// ListEmployees retrieves all employees ordered by last and first name
func (db *DB) ListEmployees(ctx context.Context) ([]types.Employee, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+employeeColumns+` FROM employees ORDER BY last_name, first_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []types.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, *e)
	}
	return employees, rows.Err()
}

// SaveEmployee inserts or updates an employee. The user name is never changed on update.
func (db *DB) SaveEmployee(ctx context.Context, e *types.Employee) error {
	if err := e.Validate(); err != nil {
		return err
	}
	experience, err := toJSON(e.Experience)
	if err != nil {
		return fmt.Errorf("failed to encode experience: %w", err)
	}
	projectIDs, err := toJSON(e.ProjectIDs)
	if err != nil {
		return fmt.Errorf("failed to encode project ids: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO employees (`+employeeColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 ON CONFLICT (id) DO UPDATE SET
		     first_name = $3,
		     last_name = $4,
		     employed_since = $5,
		     work_experience = $6,
		     scientific_assistant = $7,
		     student_assistant = $8,
		     authorization_level = $9,
		     rate_card_level = $10,
		     image = $11,
		     experience = $12,
		     project_ids = $13,
		     updated_at = NOW()`,
		e.ID, e.UserName, e.FirstName, e.LastName, e.EmployedSince, e.WorkExperience,
		e.ScientificAssistant, e.StudentAssistant, e.AuthorizationLevel, e.RateCardLevel,
		e.Image, experience, projectIDs,
	)
	if err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}

// DeleteEmployee deletes an employee
func (db *DB) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("employee not found: %s", id)
	}
	return nil
}
