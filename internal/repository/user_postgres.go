package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"atelier/internal/domain"
)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, dto domain.CreateUserDTO) (int64, error) {
	query := `
		INSERT INTO staff_users (store_id, first_name, last_name, email, phone, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, $8, $8)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		dto.StoreID, dto.FirstName, dto.LastName, dto.Email, dto.Phone, dto.Password, dto.Role, time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating staff user: %w", err)
	}

	return id, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "email = $1", email)
}

func (r *UserRepo) getOne(ctx context.Context, condition string, arg interface{}) (*domain.User, error) {
	query := fmt.Sprintf(`
		SELECT id, store_id, first_name, last_name, email, phone, password_hash, role, is_active, created_at, updated_at
		FROM staff_users
		WHERE %s
	`, condition)

	var user domain.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.StoreID, &user.FirstName, &user.LastName, &user.Email,
		&user.Phone, &user.PasswordHash, &user.Role, &user.IsActive,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("staff user: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("getting staff user: %w", err)
	}

	return &user, nil
}

func (r *UserRepo) Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error {
	updateFields, args, argCount := []string{}, []interface{}{}, 1

	if dto.FirstName != nil {
		updateFields = append(updateFields, fmt.Sprintf("first_name = $%d", argCount))
		args = append(args, *dto.FirstName)
		argCount++
	}
	if dto.LastName != nil {
		updateFields = append(updateFields, fmt.Sprintf("last_name = $%d", argCount))
		args = append(args, *dto.LastName)
		argCount++
	}
	if dto.Phone != nil {
		updateFields = append(updateFields, fmt.Sprintf("phone = $%d", argCount))
		args = append(args, *dto.Phone)
		argCount++
	}
	if dto.IsActive != nil {
		updateFields = append(updateFields, fmt.Sprintf("is_active = $%d", argCount))
		args = append(args, *dto.IsActive)
		argCount++
	}

	if len(updateFields) == 0 {
		return nil
	}

	updateFields = append(updateFields, fmt.Sprintf("updated_at = $%d", argCount))
	args = append(args, time.Now())
	argCount++

	args = append(args, id)
	query := fmt.Sprintf("UPDATE staff_users SET %s WHERE id = $%d", strings.Join(updateFields, ", "), argCount)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating staff user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("staff user %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := `UPDATE staff_users SET password_hash = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.db.Exec(ctx, query, passwordHash, time.Now(), id)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("staff user %d: %w", id, domain.ErrNotFound)
	}

	return nil
}
