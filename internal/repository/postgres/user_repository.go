package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dateit-app/dateit-backend/internal/domain"
	"github.com/dateit-app/dateit-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// uniqueViolation is the postgres error code for unique constraint hits.
const uniqueViolation = "23505"

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, bio, age, photo_url, gender, find_gender)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Bio, user.Age,
		user.PhotoURL, user.Gender, user.FindGender,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE email = $1`
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	var users []*domain.User
	query := `SELECT * FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &users, query, limit, offset)
	return users, err
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3, bio = $4, age = $5,
		    photo_url = $6, gender = $7, find_gender = $8,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $9
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Bio, user.Age,
		user.PhotoURL, user.Gender, user.FindGender, user.ID,
	).Scan(&user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM users WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Suggestions(ctx context.Context, actorID int, gender *domain.Gender, limit int) ([]*domain.User, error) {
	var users []*domain.User
	query := `
		SELECT u.* FROM users u
		WHERE u.id <> $1
		  AND NOT EXISTS (
			SELECT 1 FROM likes l WHERE l.user_id = $1 AND l.target_id = u.id
		  )
		  AND NOT EXISTS (
			SELECT 1 FROM passes p WHERE p.user_id = $1 AND p.target_id = u.id
		  )
		  AND NOT EXISTS (
			SELECT 1 FROM matches m
			WHERE (m.user1_id = $1 AND m.user2_id = u.id)
			   OR (m.user2_id = $1 AND m.user1_id = u.id)
		  )
		  AND ($2::varchar IS NULL OR u.gender = $2)
		LIMIT $3
	`
	err := r.db.SelectContext(ctx, &users, query, actorID, gender, limit)
	return users, err
}
