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

type ServiceRepo struct {
	db *pgxpool.Pool
}

func NewServiceRepository(db *pgxpool.Pool) *ServiceRepo {
	return &ServiceRepo{db: db}
}

func (r *ServiceRepo) Create(ctx context.Context, storeID int64, dto domain.CreateServiceDTO) (int64, error) {
	query := `
		INSERT INTO services (store_id, name, description, category, duration_minutes, price, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, $7)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		storeID, dto.Name, dto.Description, dto.Category, dto.DurationMinutes, dto.Price, time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating service: %w", err)
	}

	return id, nil
}

func (r *ServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	query := `
		SELECT id, store_id, name, description, category, duration_minutes, price, is_active, created_at, updated_at
		FROM services
		WHERE id = $1
	`

	var svc domain.Service
	err := r.db.QueryRow(ctx, query, id).Scan(
		&svc.ID, &svc.StoreID, &svc.Name, &svc.Description, &svc.Category,
		&svc.DurationMinutes, &svc.Price, &svc.IsActive, &svc.CreatedAt, &svc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("service %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("getting service: %w", err)
	}

	return &svc, nil
}

func (r *ServiceRepo) Update(ctx context.Context, id int64, dto domain.UpdateServiceDTO) error {
	updateFields, args, argCount := []string{}, []interface{}{}, 1

	if dto.Name != nil {
		updateFields = append(updateFields, fmt.Sprintf("name = $%d", argCount))
		args = append(args, *dto.Name)
		argCount++
	}
	if dto.Description != nil {
		updateFields = append(updateFields, fmt.Sprintf("description = $%d", argCount))
		args = append(args, *dto.Description)
		argCount++
	}
	if dto.Category != nil {
		updateFields = append(updateFields, fmt.Sprintf("category = $%d", argCount))
		args = append(args, *dto.Category)
		argCount++
	}
	if dto.DurationMinutes != nil {
		updateFields = append(updateFields, fmt.Sprintf("duration_minutes = $%d", argCount))
		args = append(args, *dto.DurationMinutes)
		argCount++
	}
	if dto.Price != nil {
		updateFields = append(updateFields, fmt.Sprintf("price = $%d", argCount))
		args = append(args, *dto.Price)
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
	query := fmt.Sprintf("UPDATE services SET %s WHERE id = $%d", strings.Join(updateFields, ", "), argCount)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("service %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *ServiceRepo) Delete(ctx context.Context, id int64) error {
	query := `UPDATE services SET is_active = FALSE, updated_at = $1 WHERE id = $2`

	tag, err := r.db.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("deactivating service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("service %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *ServiceRepo) List(ctx context.Context, filter domain.ServiceFilter) ([]domain.Service, int, error) {
	conditions, args, argCount := []string{}, []interface{}{}, 1

	if filter.StoreID != nil {
		conditions = append(conditions, fmt.Sprintf("store_id = $%d", argCount))
		args = append(args, *filter.StoreID)
		argCount++
	}
	if filter.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argCount))
		args = append(args, *filter.Category)
		argCount++
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argCount))
		args = append(args, *filter.Active)
		argCount++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM services %s", whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting services: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT id, store_id, name, description, category, duration_minutes, price, is_active, created_at, updated_at
		FROM services
		%s
		ORDER BY category, name
		LIMIT $%d OFFSET $%d
	`, whereClause, argCount, argCount+1)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing services: %w", err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		var svc domain.Service
		err := rows.Scan(
			&svc.ID, &svc.StoreID, &svc.Name, &svc.Description, &svc.Category,
			&svc.DurationMinutes, &svc.Price, &svc.IsActive, &svc.CreatedAt, &svc.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning service row: %w", err)
		}
		services = append(services, svc)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating service rows: %w", err)
	}

	return services, total, nil
}
