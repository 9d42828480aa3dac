package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/alexanderho00001/SignWave/domain"
)

func (pgrr *PostgresRepo) ListLessons(ctx context.Context) ([]domain.Lesson, error) {
	rows, err := pgrr.pool.Query(ctx, `SELECT slug, title, description FROM lessons ORDER BY slug`)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}
	defer rows.Close()

	lessons := []domain.Lesson{}
	for rows.Next() {
		var lesson domain.Lesson
		if err := rows.Scan(&lesson.Slug, &lesson.Title, &lesson.Description); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
		}
		lessons = append(lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}

	return lessons, nil
}

func (pgrr *PostgresRepo) GetProgress(ctx context.Context, userId string) ([]domain.LessonProgress, error) {
	rows, err := pgrr.pool.Query(ctx,
		`SELECT lesson_slug, completed, last_score, updated_at
		 FROM user_progress WHERE user_id = $1 ORDER BY lesson_slug`, userId)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}
	defer rows.Close()

	progress := []domain.LessonProgress{}
	for rows.Next() {
		var p domain.LessonProgress
		if err := rows.Scan(&p.LessonSlug, &p.Completed, &p.LastScore, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
		}
		progress = append(progress, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}

	return progress, nil
}

// UpsertProgress keeps one row per user+lesson, updating it in place.
func (pgrr *PostgresRepo) UpsertProgress(ctx context.Context, userId, lessonSlug string, completed bool, lastScore *float64) (domain.LessonProgress, error) {
	row := pgrr.pool.QueryRow(ctx,
		`INSERT INTO user_progress(user_id, lesson_slug, completed, last_score)
		 VALUES($1, $2, $3, $4)
		 ON CONFLICT (user_id, lesson_slug)
		 DO UPDATE SET completed = $3, last_score = $4, updated_at = now()
		 RETURNING lesson_slug, completed, last_score, updated_at`,
		userId, lessonSlug, completed, lastScore,
	)

	var p domain.LessonProgress
	err := row.Scan(&p.LessonSlug, &p.Completed, &p.LastScore, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// "23503" is the PostgreSQL error code for foreign_key_violation
			if pgErr.Code == "23503" {
				return domain.LessonProgress{}, domain.ErrLessonNotFound
			}
		}

		if errors.Is(err, pgx.ErrNoRows) {
			return domain.LessonProgress{}, domain.ErrLessonNotFound
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return domain.LessonProgress{}, err
		}

		return domain.LessonProgress{}, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}

	return p, nil
}
