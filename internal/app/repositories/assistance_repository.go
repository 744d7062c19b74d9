package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/uniactivity/internal/app/models"
	"github.com/yigit/uniactivity/internal/app/services"
	"github.com/yigit/uniactivity/internal/db"
	"github.com/yigit/uniactivity/internal/pkg/apperrors"
	"github.com/yigit/uniactivity/internal/pkg/dberrors"
)

var assistanceColumns = []string{
	"id", "user_id", "class_id", "session_id", "instructor_id", "start_time", "confirm",
	"created_at", "updated_at",
}

// AssistanceRepository handles database operations for enrollment and attendance records
type AssistanceRepository struct {
	db *db.PostgresDB
}

// NewAssistanceRepository creates a new AssistanceRepository
func NewAssistanceRepository(database *db.PostgresDB) *AssistanceRepository {
	return &AssistanceRepository{db: database}
}

func scanAssistance(row pgx.Row) (*models.Assistance, error) {
	var a models.Assistance
	err := row.Scan(
		&a.ID, &a.UserID, &a.ClassID, &a.SessionID, &a.InstructorID, &a.StartTime, &a.Confirm,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// applyFilter adds the filter predicates to a query
func applyFilter(query squirrel.SelectBuilder, f services.AssistanceFilter) squirrel.SelectBuilder {
	if f.UserID != "" {
		query = query.Where(squirrel.Eq{"user_id": f.UserID})
	}
	if f.ClassID != "" {
		query = query.Where(squirrel.Eq{"class_id": f.ClassID})
	}
	if f.Confirmed != nil {
		query = query.Where(squirrel.Eq{"confirm": *f.Confirmed})
	}
	if f.StartAfter != nil {
		query = query.Where(squirrel.Gt{"start_time": *f.StartAfter})
	}
	if f.StartBefore != nil {
		query = query.Where(squirrel.Lt{"start_time": *f.StartBefore})
	}
	if f.StartFrom != nil {
		query = query.Where(squirrel.GtOrEq{"start_time": *f.StartFrom})
	}
	if f.StartTo != nil {
		query = query.Where(squirrel.LtOrEq{"start_time": *f.StartTo})
	}
	return query
}

// Enroll inserts the records of one user and class in a transaction that holds the class
// row lock, so concurrent enrollments into the same class are serialized.
func (r *AssistanceRepository) Enroll(ctx context.Context, maxStudents int, records []*models.Assistance) error {
	if len(records) == 0 {
		return nil
	}
	userID, classID := records[0].UserID, records[0].ClassID

	var sessionIDs []string
	for _, rec := range records {
		if rec.SessionID != nil {
			sessionIDs = append(sessionIDs, *rec.SessionID)
		}
	}

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var locked string
		err := tx.QueryRow(ctx, `SELECT id FROM classes WHERE id = $1 FOR UPDATE`, classID).Scan(&locked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrClassNotFound
			}
			return fmt.Errorf("error locking class: %w", err)
		}

		sql, args, err := psql.Select("COUNT(*)").From("assistances").
			Where(squirrel.Eq{"user_id": userID, "class_id": classID}).
			Where(squirrel.Or{squirrel.Eq{"session_id": nil}, squirrel.Eq{"session_id": sessionIDs}}).
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		var existing int64
		if err := tx.QueryRow(ctx, sql, args...).Scan(&existing); err != nil {
			return fmt.Errorf("error checking enrollment: %w", err)
		}
		if existing > 0 {
			return apperrors.ErrAlreadyEnrolled
		}

		sql, args, err = psql.Select("COUNT(*)").From("assistances").
			Where(squirrel.Eq{"class_id": classID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		var enrolled int64
		if err := tx.QueryRow(ctx, sql, args...).Scan(&enrolled); err != nil {
			return fmt.Errorf("error counting enrollments: %w", err)
		}
		if enrolled >= int64(maxStudents) {
			return apperrors.ErrCapacityReached
		}

		insert := psql.Insert("assistances").
			Columns("id", "user_id", "class_id", "session_id", "start_time", "confirm").
			Suffix("RETURNING id, created_at, updated_at")
		for _, rec := range records {
			rec.ID = uuid.NewString()
			rec.Confirm = false
			rec.InstructorID = nil
			insert = insert.Values(rec.ID, rec.UserID, rec.ClassID, rec.SessionID, rec.StartTime, false)
		}
		sql, args, err = insert.ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}

		rows, err := tx.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		byID := make(map[string]*models.Assistance, len(records))
		for _, rec := range records {
			byID[rec.ID] = rec
		}
		for rows.Next() {
			var id string
			var createdAt, updatedAt time.Time
			if err := rows.Scan(&id, &createdAt, &updatedAt); err != nil {
				return fmt.Errorf("error scanning enrollment: %w", err)
			}
			if rec, ok := byID[id]; ok {
				rec.CreatedAt, rec.UpdatedAt = createdAt, updatedAt
			}
		}
		return rows.Err()
	})

	switch {
	case err == nil:
		return nil
	case dberrors.IsUniqueViolation(err):
		return apperrors.ErrAlreadyEnrolled
	case errors.Is(err, apperrors.ErrAlreadyEnrolled),
		errors.Is(err, apperrors.ErrCapacityReached),
		errors.Is(err, apperrors.ErrClassNotFound):
		return err
	}
	return fmt.Errorf("error enrolling: %w", err)
}

// FindByUserAndClass retrieves the class-level record, or the record of sessionID when set
func (r *AssistanceRepository) FindByUserAndClass(ctx context.Context, userID, classID, sessionID string) (*models.Assistance, error) {
	query := psql.Select(assistanceColumns...).From("assistances").
		Where(squirrel.Eq{"user_id": userID, "class_id": classID})
	if sessionID == "" {
		query = query.Where(squirrel.Eq{"session_id": nil})
	} else {
		query = query.Where(squirrel.Eq{"session_id": sessionID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	record, err := scanAssistance(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error getting enrollment: %w", err)
	}
	return record, nil
}

// DeleteByUserAndClass removes every record of the pair
func (r *AssistanceRepository) DeleteByUserAndClass(ctx context.Context, userID, classID string) (int64, error) {
	sql, args, err := psql.Delete("assistances").
		Where(squirrel.Eq{"user_id": userID, "class_id": classID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error deleting enrollment: %w", err)
	}
	return tag.RowsAffected(), nil
}

// MarkConfirmed confirms a pending record with a conditional update
func (r *AssistanceRepository) MarkConfirmed(ctx context.Context, id, instructorID string) (*models.Assistance, error) {
	var instructor *string
	if instructorID != "" {
		instructor = &instructorID
	}

	sql, args, err := psql.Update("assistances").
		Set("confirm", true).
		Set("instructor_id", instructor).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "confirm": false}).
		Suffix("RETURNING " + strings.Join(assistanceColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	record, err := scanAssistance(r.db.Pool.QueryRow(ctx, sql, args...))
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("error confirming attendance: %w", err)
	}

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM assistances WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("error checking enrollment: %w", err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyConfirmed
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

// List retrieves records matching the filter ordered by start time
func (r *AssistanceRepository) List(ctx context.Context, filter services.AssistanceFilter) ([]models.Assistance, error) {
	query := applyFilter(psql.Select(assistanceColumns...).From("assistances"), filter)
	sql, args, err := query.OrderBy("start_time", "created_at").ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	records := make([]models.Assistance, 0)
	for rows.Next() {
		record, err := scanAssistance(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning assistance: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assistances: %w", err)
	}
	return records, nil
}

// Count counts records matching the filter
func (r *AssistanceRepository) Count(ctx context.Context, filter services.AssistanceFilter) (int64, error) {
	sql, args, err := applyFilter(psql.Select("COUNT(*)").From("assistances"), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting assistances: %w", err)
	}
	return count, nil
}
