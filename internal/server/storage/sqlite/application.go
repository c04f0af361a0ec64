package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/jobtracker/internal/models"
	"github.com/iudanet/jobtracker/internal/server/storage"
)

const applicationColumns = `
	id, user_id, job_title, company_name, job_url, notes, salary_range, location,
	employment_type, status, source, external_job_id, application_date
`

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*models.JobApplication, error) {
	app := &models.JobApplication{}
	var (
		jobURL, notes, salaryRange, location sql.NullString
		employmentType, externalJobID        sql.NullString
		applicationDate                      int64
	)

	if err := row.Scan(
		&app.ID,
		&app.UserID,
		&app.JobTitle,
		&app.CompanyName,
		&jobURL,
		&notes,
		&salaryRange,
		&location,
		&employmentType,
		&app.Status,
		&app.Source,
		&externalJobID,
		&applicationDate,
	); err != nil {
		return nil, err
	}

	app.JobURL = nullStringPtr(jobURL)
	app.Notes = nullStringPtr(notes)
	app.SalaryRange = nullStringPtr(salaryRange)
	app.Location = nullStringPtr(location)
	app.EmploymentType = nullStringPtr(employmentType)
	app.ExternalJobID = nullStringPtr(externalJobID)
	app.ApplicationDate = fromUnix(applicationDate)

	return app, nil
}

// CreateApplication inserts application and its initial history row
func (s *Storage) CreateApplication(ctx context.Context, app *models.JobApplication, note string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO job_applications (
				user_id, job_title, company_name, job_url, notes, salary_range, location,
				employment_type, status, source, external_job_id, application_date
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			app.UserID,
			app.JobTitle,
			app.CompanyName,
			stringArg(app.JobURL),
			stringArg(app.Notes),
			stringArg(app.SalaryRange),
			stringArg(app.Location),
			stringArg(app.EmploymentType),
			string(app.Status),
			app.Source,
			stringArg(app.ExternalJobID),
			toUnix(app.ApplicationDate),
		)
		if err != nil {
			return fmt.Errorf("failed to insert application: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get application id: %w", err)
		}

		if err := insertHistory(ctx, tx, id, app.Status, &note, app.ApplicationDate); err != nil {
			return err
		}

		app.ID = id
		return nil
	})
}

func insertHistory(ctx context.Context, q queryer, appID int64, status models.ApplicationStatus, notes *string, changedAt time.Time) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO application_status_history (application_id, status, notes, changed_at)
		VALUES (?, ?, ?, ?)
	`, appID, string(status), stringArg(notes), toUnix(changedAt))
	if err != nil {
		return fmt.Errorf("failed to insert status history: %w", err)
	}
	return nil
}

// checkOwner возвращает ErrApplicationNotFound или ErrNotOwner
func checkOwner(ctx context.Context, q queryer, id, userID int64) error {
	var ownerID int64
	err := q.QueryRowContext(ctx,
		`SELECT user_id FROM job_applications WHERE id = ?`, id,
	).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrApplicationNotFound
		}
		return fmt.Errorf("failed to check application owner: %w", err)
	}
	if ownerID != userID {
		return storage.ErrNotOwner
	}
	return nil
}

// ListApplications returns user's applications, newest first
func (s *Storage) ListApplications(ctx context.Context, userID int64, status *models.ApplicationStatus) ([]models.JobApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM job_applications WHERE user_id = ?`
	args := []any{userID}

	if status != nil {
		query += ` AND status = ?`
		args = append(args, string(*status))
	}
	query += ` ORDER BY application_date DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	apps := make([]models.JobApplication, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return apps, nil
}

// GetApplication retrieves application owned by userID
func (s *Storage) GetApplication(ctx context.Context, id, userID int64) (*models.JobApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM job_applications WHERE id = ?`

	app, err := scanApplication(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	if app.UserID != userID {
		return nil, storage.ErrNotOwner
	}

	return app, nil
}

// UpdateStatus changes application status and appends history row
func (s *Storage) UpdateStatus(ctx context.Context, id, userID int64, status models.ApplicationStatus, notes *string, changedAt time.Time) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := checkOwner(ctx, tx, id, userID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE job_applications SET status = ? WHERE id = ? AND user_id = ?`,
			string(status), id, userID,
		); err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}

		return insertHistory(ctx, tx, id, status, notes, changedAt)
	})
}

// UpdateApplication updates only the fields present in update
func (s *Storage) UpdateApplication(ctx context.Context, id, userID int64, update models.ApplicationUpdate) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := checkOwner(ctx, tx, id, userID); err != nil {
			return err
		}

		if update.IsEmpty() {
			return nil
		}

		sets := make([]string, 0, 9)
		args := make([]any, 0, 11)

		addField := func(column string, value *string) {
			if value != nil {
				sets = append(sets, column+" = ?")
				args = append(args, *value)
			}
		}

		addField("job_title", update.JobTitle)
		addField("company_name", update.CompanyName)
		addField("job_url", update.JobURL)
		addField("notes", update.Notes)
		addField("salary_range", update.SalaryRange)
		addField("location", update.Location)
		addField("employment_type", update.EmploymentType)
		addField("source", update.Source)
		addField("external_job_id", update.ExternalJobID)

		args = append(args, id, userID)
		query := "UPDATE job_applications SET " + strings.Join(sets, ", ") + " WHERE id = ? AND user_id = ?"

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to update application: %w", err)
		}

		return nil
	})
}

// DeleteApplication deletes application; history rows are removed by cascade
func (s *Storage) DeleteApplication(ctx context.Context, id, userID int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := checkOwner(ctx, tx, id, userID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM job_applications WHERE id = ? AND user_id = ?`, id, userID,
		); err != nil {
			return fmt.Errorf("failed to delete application: %w", err)
		}

		return nil
	})
}

// GetHistory returns status history of an owned application, newest first
func (s *Storage) GetHistory(ctx context.Context, id, userID int64) ([]models.StatusHistory, error) {
	query := `
		SELECT h.id, h.application_id, h.status, h.notes, h.changed_at
		FROM application_status_history h
		JOIN job_applications a ON a.id = h.application_id
		WHERE h.application_id = ? AND a.user_id = ?
		ORDER BY h.changed_at DESC, h.id DESC
	`

	rows, err := s.db.QueryContext(ctx, query, id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query status history: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	history := make([]models.StatusHistory, 0)
	for rows.Next() {
		var (
			h         models.StatusHistory
			notes     sql.NullString
			changedAt int64
		)
		if err := rows.Scan(&h.ID, &h.ApplicationID, &h.Status, &notes, &changedAt); err != nil {
			return nil, fmt.Errorf("failed to scan status history: %w", err)
		}
		h.Notes = nullStringPtr(notes)
		h.ChangedAt = fromUnix(changedAt)
		history = append(history, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return history, nil
}

// CountByStatus returns number of applications per status
func (s *Storage) CountByStatus(ctx context.Context, userID int64) (map[models.ApplicationStatus]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM job_applications WHERE user_id = ? GROUP BY status`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	counts := make(map[models.ApplicationStatus]int)
	for rows.Next() {
		var (
			status models.ApplicationStatus
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return counts, nil
}

// CountSince returns number of applications dated at or after since
func (s *Storage) CountSince(ctx context.Context, userID int64, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM job_applications WHERE user_id = ? AND application_date >= ?`,
		userID, toUnix(since),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return count, nil
}
