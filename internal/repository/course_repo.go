package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-course-tracker/internal/model"
)

const courseColumns = `id, name, code, description, credit, image, user_id, created_at, updated_at`

// CourseRepository scopes every read and mutation by owner id. A course that
// belongs to someone else is indistinguishable from one that does not exist.
type CourseRepository struct {
	pool *pgxpool.Pool
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

func (r *CourseRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE user_id = $1 ORDER BY created_at DESC`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	courses := make([]model.Course, 0)
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.Description, &c.Credit, &c.Image,
			&c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (r *CourseRepository) FindByOwner(ctx context.Context, id int64, ownerID int64) (model.Course, error) {
	var c model.Course
	err := r.pool.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = $1 AND user_id = $2`,
		id, ownerID).
		Scan(&c.ID, &c.Name, &c.Code, &c.Description, &c.Credit, &c.Image,
			&c.UserID, &c.CreatedAt, &c.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Course{}, model.ErrCourseNotFound
	}
	if err != nil {
		return model.Course{}, fmt.Errorf("find course: %w", err)
	}
	return c, nil
}

func (r *CourseRepository) Create(ctx context.Context, c model.Course) (model.Course, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO courses (name, code, description, credit, image, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Code, c.Description, c.Credit, c.Image, c.UserID).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return model.Course{}, fmt.Errorf("create course: %w", err)
	}
	return c, nil
}

// Update carries the owner id in the WHERE clause of the statement itself so
// the ownership check and the mutation are one atomic condition.
func (r *CourseRepository) Update(ctx context.Context, c model.Course) (model.Course, error) {
	err := r.pool.QueryRow(ctx,
		`UPDATE courses
		 SET name = $1, code = $2, description = $3, credit = $4, image = $5, updated_at = now()
		 WHERE id = $6 AND user_id = $7
		 RETURNING `+courseColumns,
		c.Name, c.Code, c.Description, c.Credit, c.Image, c.ID, c.UserID).
		Scan(&c.ID, &c.Name, &c.Code, &c.Description, &c.Credit, &c.Image,
			&c.UserID, &c.CreatedAt, &c.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Course{}, model.ErrCourseNotFound
	}
	if err != nil {
		return model.Course{}, fmt.Errorf("update course: %w", err)
	}
	return c, nil
}

func (r *CourseRepository) Delete(ctx context.Context, id int64, ownerID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM courses WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCourseNotFound
	}
	return nil
}
