package journey

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates no journey exists for the given identifier.
	ErrNotFound = errors.New("journey not found")

	// ErrAlreadyEnded indicates an end transition on a journey that is not active.
	ErrAlreadyEnded = errors.New("journey already ended")
)

// Repository persists journey records.
type Repository interface {
	Create(ctx context.Context, j Journey) error
	Get(ctx context.Context, id string) (Journey, error)
	End(ctx context.Context, id string, endedAt time.Time) error
}

// PostgresRepository stores journeys in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed journey repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a journey record.
func (r *PostgresRepository) Create(ctx context.Context, j Journey) error {
	journeyID, err := uuid.Parse(j.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO journeys (id, user_name, status, started_at)
        VALUES ($1, $2, $3, $4)`, journeyID, j.UserName, string(j.Status), j.StartedAt.UTC())
	return err
}

// Get fetches a journey by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Journey, error) {
	journeyID, err := uuid.Parse(id)
	if err != nil {
		return Journey{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, user_name, status, started_at, ended_at
        FROM journeys WHERE id = $1`, journeyID)
	var (
		idVal     uuid.UUID
		status    string
		startedAt time.Time
		endedAt   sql.NullTime
		j         Journey
	)
	if err := row.Scan(&idVal, &j.UserName, &status, &startedAt, &endedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Journey{}, ErrNotFound
		}
		return Journey{}, err
	}
	j.ID = idVal.String()
	j.Status = Status(status)
	j.StartedAt = startedAt.UTC()
	if endedAt.Valid {
		j.EndedAt = endedAt.Time.UTC()
	}
	return j, nil
}

// End transitions an active journey to ENDED. The conditional update makes the
// transition atomic under concurrent callers; a zero row count means the
// journey is either absent or already ended.
func (r *PostgresRepository) End(ctx context.Context, id string, endedAt time.Time) error {
	journeyID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE journeys SET status = $1, ended_at = $2
        WHERE id = $3 AND status = $4`, string(StatusEnded), endedAt.UTC(), journeyID, string(StatusActive))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}
		return ErrAlreadyEnded
	}
	return nil
}
