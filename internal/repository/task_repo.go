package repository

import (
	"context"
	"errors"

	"taskmanager/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// List returns all tasks, optionally filtered by a case-insensitive
// substring match on the title.
func (r *TaskRepository) List(ctx context.Context, titleFilter string) ([]domain.Task, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if titleFilter == "" {
		rows, err = r.db.Query(ctx,
			`SELECT id, title, description, created_at FROM tasks ORDER BY id`)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT id, title, description, created_at FROM tasks
			 WHERE title ILIKE '%' || $1 || '%' ORDER BY id`, titleFilter)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []domain.Task{}
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

// GetByID returns nil when no task with the given id exists.
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, title, description, created_at FROM tasks WHERE id = $1`, id)

	var t domain.Task
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO tasks (title, description) VALUES ($1, $2)
		 RETURNING id, created_at`,
		t.Title, t.Description,
	).Scan(&t.ID, &t.CreatedAt)
}

// Update replaces title and description. Returns false when no row matched.
func (r *TaskRepository) Update(ctx context.Context, id int64, title string, description *string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE tasks SET title = $1, description = $2 WHERE id = $3`,
		title, description, id,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a task by id. Returns false when no row matched.
func (r *TaskRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
