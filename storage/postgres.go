package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alexanderho00001/SignWave/domain"
)

type PostgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresRepo(ctx context.Context, connString string) (*PostgresRepo, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	return &PostgresRepo{pool: pool}, nil
}

const roomColumns = `id, room_code, host_id, guest_id, host_name, guest_name,
	is_started, is_finished, host_score, guest_score, goal_score,
	problem_type, problem_question, problem_answer,
	host_given_up, guest_given_up, host_skipped, guest_skipped,
	last_solved_by, created_at, version`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(row rowScanner) (domain.Room, error) {
	var room domain.Room
	var problemType, problemQuestion, problemAnswer *string

	err := row.Scan(
		&room.Id, &room.RoomCode, &room.HostId, &room.GuestId, &room.HostName, &room.GuestName,
		&room.IsStarted, &room.IsFinished, &room.HostScore, &room.GuestScore, &room.GoalScore,
		&problemType, &problemQuestion, &problemAnswer,
		&room.HostGivenUp, &room.GuestGivenUp, &room.HostSkipped, &room.GuestSkipped,
		&room.LastSolvedBy, &room.CreatedAt, &room.Version,
	)
	if err != nil {
		return domain.Room{}, err
	}

	if problemType != nil && problemQuestion != nil && problemAnswer != nil {
		room.CurrentProblem = &domain.Problem{
			Type:     domain.ProblemType(*problemType),
			Question: *problemQuestion,
			Answer:   *problemAnswer,
		}
	}
	return room, nil
}

func problemFields(p *domain.Problem) (*string, *string, *string) {
	if p == nil {
		return nil, nil, nil
	}
	t := string(p.Type)
	return &t, &p.Question, &p.Answer
}

func (pgrr *PostgresRepo) CreateRoom(ctx context.Context, room domain.Room) (domain.Room, error) {
	problemType, problemQuestion, problemAnswer := problemFields(room.CurrentProblem)

	row := pgrr.pool.QueryRow(ctx, `INSERT INTO rooms(
			id, room_code, host_id, host_name, goal_score,
			problem_type, problem_question, problem_answer)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+roomColumns,
		room.Id, room.RoomCode, room.HostId, room.HostName, room.GoalScore,
		problemType, problemQuestion, problemAnswer,
	)

	created, err := scanRoom(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// "23505" is the PostgreSQL error code for unique_violation
			if pgErr.Code == "23505" {
				return domain.Room{}, domain.ErrConflict
			}
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return domain.Room{}, err
		}

		return domain.Room{}, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}

	return created, nil
}

func (pgrr *PostgresRepo) GetRoomByCode(ctx context.Context, code string) (domain.Room, error) {
	row := pgrr.pool.QueryRow(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE room_code = upper($1)`, code)

	room, err := scanRoom(row)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return domain.Room{}, domain.ErrRoomNotFound
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return domain.Room{}, err
		default:
			return domain.Room{}, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
		}
	}

	return room, nil
}

// UpdateRoom is the conditional write everything races through. The version
// predicate makes the whole read-decide-write cycle atomic: if any other
// write landed since the caller's read, no row matches and the caller gets
// domain.ErrVersionMismatch instead of silently clobbering state.
func (pgrr *PostgresRepo) UpdateRoom(ctx context.Context, id string, expectedVersion int64, room domain.Room) (domain.Room, error) {
	problemType, problemQuestion, problemAnswer := problemFields(room.CurrentProblem)

	row := pgrr.pool.QueryRow(ctx, `UPDATE rooms SET
			guest_id = $3, guest_name = $4,
			is_started = $5, is_finished = $6,
			host_score = $7, guest_score = $8,
			problem_type = $9, problem_question = $10, problem_answer = $11,
			host_given_up = $12, guest_given_up = $13,
			host_skipped = $14, guest_skipped = $15,
			last_solved_by = $16,
			version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING `+roomColumns,
		id, expectedVersion,
		room.GuestId, room.GuestName,
		room.IsStarted, room.IsFinished,
		room.HostScore, room.GuestScore,
		problemType, problemQuestion, problemAnswer,
		room.HostGivenUp, room.GuestGivenUp,
		room.HostSkipped, room.GuestSkipped,
		room.LastSolvedBy,
	)

	updated, err := scanRoom(row)
	if err == nil {
		return updated, nil
	}

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		var exists bool
		checkErr := pgrr.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM rooms WHERE id = $1)`, id).Scan(&exists)
		if checkErr != nil {
			return domain.Room{}, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, checkErr)
		}
		if !exists {
			return domain.Room{}, domain.ErrRoomNotFound
		}
		return domain.Room{}, domain.ErrVersionMismatch
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domain.Room{}, err
	default:
		return domain.Room{}, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}
}

func (pgrr *PostgresRepo) ListAvailableRooms(ctx context.Context, limit int) ([]domain.Room, error) {
	rows, err := pgrr.pool.Query(ctx, `SELECT `+roomColumns+` FROM rooms
		WHERE NOT is_started AND NOT is_finished AND guest_id = ''
		ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}
	defer rows.Close()

	rooms := make([]domain.Room, 0, limit)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}

	return rooms, nil
}
