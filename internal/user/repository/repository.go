package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/influmatch/backend/internal/common/db"
	"github.com/influmatch/backend/internal/common/logger"
	"github.com/influmatch/backend/internal/user/domain"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

type Repository interface {
	Create(ctx context.Context, user domain.User) error
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewPgRepository(pool *pgxpool.Pool, log *logger.Logger) *PgRepository {
	return &PgRepository{pool: pool, log: log}
}

// Create relies on the unique index on users(email) as the real uniqueness
// guarantee; the service-level lookup before insert is only a fast path.
func (r *PgRepository) Create(ctx context.Context, user domain.User) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO users (id, user_name, email, password_hash) VALUES ($1, $2, $3, $4)`,
		string(user.ID),
		user.UserName,
		user.Email,
		user.PasswordHash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailAlreadyExists
		}
	}
	return db.HandleExecError(err, "create user", start)
}

// Reads are retried on transient connection failures; writes are not, so a
// retry can never double-insert.
func (r *PgRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User
	err := db.RetryWithBackoff(ctx, r.log, db.DefaultRetryConfig, func() error {
		start := time.Now()
		row := r.pool.QueryRow(
			ctx,
			`SELECT id, user_name, email, password_hash, created_at FROM users WHERE email = $1`,
			email,
		)
		return db.HandleQueryError(
			row.Scan(&user.ID, &user.UserName, &user.Email, &user.PasswordHash, &user.CreatedAt),
			ErrUserNotFound, "find user by email", start)
	})
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	var user domain.User
	err := db.RetryWithBackoff(ctx, r.log, db.DefaultRetryConfig, func() error {
		start := time.Now()
		row := r.pool.QueryRow(
			ctx,
			`SELECT id, user_name, email, password_hash, created_at FROM users WHERE id = $1`,
			string(id),
		)
		return db.HandleQueryError(
			row.Scan(&user.ID, &user.UserName, &user.Email, &user.PasswordHash, &user.CreatedAt),
			ErrUserNotFound, "find user by id", start)
	})
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}
