package repository

import (
	"context"
	"errors"

	"taskmanager/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrUsernameTaken is returned when an insert or rename hits the unique
// constraint on users.username.
var ErrUsernameTaken = errors.New("username already taken")

const uniqueViolation = "23505"

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// GetByUsername returns the full row including the password hash, or nil
// when no such user exists.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, username, password_hash, role, created_at
		 FROM users
		 WHERE username = $1`,
		username,
	)

	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, username, password_hash, role, created_at
		 FROM users
		 WHERE id = $1`,
		id,
	)

	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user. The unique constraint on username closes the
// check-then-insert race; a violation surfaces as ErrUsernameTaken.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string, role domain.Role) (*domain.User, error) {
	u := domain.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, role)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		username, passwordHash, role,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return &u, nil
}

// UpdateCredentials changes the username and/or password hash of a user.
// Nil fields are left untouched. Returns false when the user does not exist.
func (r *UserRepository) UpdateCredentials(ctx context.Context, id int64, username, passwordHash *string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE users
		 SET username      = COALESCE($1, username),
		     password_hash = COALESCE($2, password_hash)
		 WHERE id = $3`,
		username, passwordHash, id,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return false, ErrUsernameTaken
		}
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a user by id. Returns false when no row matched.
func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.UserResponse, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, username, role FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUserResponses(rows)
}

func (r *UserRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.UserResponse, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, username, role FROM users WHERE role = $1 ORDER BY id`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUserResponses(rows)
}

func scanUserResponses(rows pgx.Rows) ([]domain.UserResponse, error) {
	res := []domain.UserResponse{}
	for rows.Next() {
		var u domain.UserResponse
		if err := rows.Scan(&u.ID, &u.Username, &u.Role); err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}
