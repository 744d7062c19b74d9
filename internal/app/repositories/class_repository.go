package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/uniactivity/internal/app/models"
	"github.com/yigit/uniactivity/internal/db"
	"github.com/yigit/uniactivity/internal/pkg/apperrors"
	"github.com/yigit/uniactivity/internal/pkg/dberrors"
)

var classColumns = []string{
	"id", "name", "max_students", "type", "start_date", "end_date", "start_time", "end_time",
	"sessions", "resources", "instructor_id", "repetition", "end_time_repetition",
	"created_at", "updated_at",
}

// ClassRepository handles database operations for classes. Sessions and resources are
// stored as JSONB arrays on the class row.
type ClassRepository struct {
	db *db.PostgresDB
}

// NewClassRepository creates a new ClassRepository
func NewClassRepository(database *db.PostgresDB) *ClassRepository {
	return &ClassRepository{db: database}
}

// jsonArrays returns non-nil slices so the JSONB columns never receive SQL NULL
func jsonArrays(class *models.Class) ([]models.Session, []models.Equipment) {
	sessions, resources := class.Sessions, class.Resources
	if sessions == nil {
		sessions = []models.Session{}
	}
	if resources == nil {
		resources = []models.Equipment{}
	}
	return sessions, resources
}

func scanClass(row pgx.Row) (*models.Class, error) {
	var c models.Class
	err := row.Scan(
		&c.ID, &c.Name, &c.MaxStudents, &c.Type, &c.StartDate, &c.EndDate, &c.StartTime, &c.EndTime,
		&c.Sessions, &c.Resources, &c.InstructorID, &c.Repetition, &c.EndTimeRepetition,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClassRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]models.Class, error) {
	sql, args, err := query.OrderBy("start_time", "created_at").ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	classes := make([]models.Class, 0)
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning class: %w", err)
		}
		classes = append(classes, *class)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating classes: %w", err)
	}
	return classes, nil
}

// Create inserts the classes in one transaction, so either all of them are stored or none
func (r *ClassRepository) Create(ctx context.Context, classes ...*models.Class) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, class := range classes {
			if err := insertClass(ctx, tx, class); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertClass(ctx context.Context, tx pgx.Tx, class *models.Class) error {
	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	sessions, resources := jsonArrays(class)

	sql, args, err := psql.Insert("classes").
		Columns("id", "name", "max_students", "type", "start_date", "end_date", "start_time", "end_time",
			"sessions", "resources", "instructor_id", "repetition", "end_time_repetition").
		Values(class.ID, class.Name, class.MaxStudents, class.Type, class.StartDate, class.EndDate,
			class.StartTime, class.EndTime, sessions, resources, class.InstructorID, class.Repetition,
			class.EndTimeRepetition).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = tx.QueryRow(ctx, sql, args...).Scan(&class.CreatedAt, &class.UpdatedAt)
	switch {
	case err == nil:
		return nil
	case dberrors.IsUniqueViolation(err):
		return apperrors.NewConflictError("class id already exists")
	}
	return fmt.Errorf("error creating class: %w", err)
}

// Update replaces every field of the class
func (r *ClassRepository) Update(ctx context.Context, class *models.Class) error {
	sessions, resources := jsonArrays(class)

	sql, args, err := psql.Update("classes").
		Set("name", class.Name).
		Set("max_students", class.MaxStudents).
		Set("type", class.Type).
		Set("start_date", class.StartDate).
		Set("end_date", class.EndDate).
		Set("start_time", class.StartTime).
		Set("end_time", class.EndTime).
		Set("sessions", sessions).
		Set("resources", resources).
		Set("instructor_id", class.InstructorID).
		Set("repetition", class.Repetition).
		Set("end_time_repetition", class.EndTimeRepetition).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", class.ID).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(&class.CreatedAt, &class.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrClassNotFound
		}
		return fmt.Errorf("error updating class: %w", err)
	}
	return nil
}

// Delete removes a class; its assistance records cascade
func (r *ClassRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := psql.Delete("classes").Where("id = ?", id).ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting class: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}
	return nil
}

// GetByID retrieves a class by ID
func (r *ClassRepository) GetByID(ctx context.Context, id string) (*models.Class, error) {
	sql, args, err := psql.Select(classColumns...).From("classes").Where("id = ?", id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	class, err := scanClass(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, fmt.Errorf("error getting class: %w", err)
	}
	return class, nil
}

// GetAll retrieves every class
func (r *ClassRepository) GetAll(ctx context.Context) ([]models.Class, error) {
	return r.list(ctx, psql.Select(classColumns...).From("classes"))
}

// GetByType retrieves classes of an activity type
func (r *ClassRepository) GetByType(ctx context.Context, classType string) ([]models.Class, error) {
	return r.list(ctx, psql.Select(classColumns...).From("classes").Where(squirrel.Eq{"type": classType}))
}

// GetActiveOn retrieves classes whose end date, or end time when there is no end date,
// falls on day or later
func (r *ClassRepository) GetActiveOn(ctx context.Context, day time.Time) ([]models.Class, error) {
	return r.list(ctx, psql.Select(classColumns...).From("classes").
		Where("COALESCE(end_date, end_time::date) >= ?::date", day))
}

// GetBySessionWindow retrieves classes with a session on day inside the window. Session
// times are compared as the strings they were stored as.
func (r *ClassRepository) GetBySessionWindow(ctx context.Context, day, start, end string) ([]models.Class, error) {
	window := squirrel.Expr(`EXISTS (
		SELECT 1 FROM jsonb_array_elements(sessions) AS s
		WHERE s->>'day' = ? AND s->>'startTime' >= ? AND (?::text = '' OR s->>'endTime' <= ?)
	)`, day, start, end, end)
	return r.list(ctx, psql.Select(classColumns...).From("classes").Where(window))
}
