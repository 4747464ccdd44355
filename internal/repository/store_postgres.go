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

type StoreRepo struct {
	db *pgxpool.Pool
}

func NewStoreRepository(db *pgxpool.Pool) *StoreRepo {
	return &StoreRepo{db: db}
}

func (r *StoreRepo) Create(ctx context.Context, dto domain.CreateStoreDTO) (int64, error) {
	query := `
		INSERT INTO stores (name, slug, timezone, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		dto.Name, dto.Slug, dto.Timezone, dto.Phone, dto.Address, time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating store: %w", err)
	}

	return id, nil
}

func (r *StoreRepo) GetByID(ctx context.Context, id int64) (*domain.Store, error) {
	query := `
		SELECT id, name, slug, timezone, phone, address, created_at, updated_at
		FROM stores
		WHERE id = $1
	`

	var store domain.Store
	err := r.db.QueryRow(ctx, query, id).Scan(
		&store.ID, &store.Name, &store.Slug, &store.Timezone,
		&store.Phone, &store.Address, &store.CreatedAt, &store.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("store %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("getting store: %w", err)
	}

	return &store, nil
}

func (r *StoreRepo) GetBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	query := `
		SELECT id, name, slug, timezone, phone, address, created_at, updated_at
		FROM stores
		WHERE slug = $1
	`

	var store domain.Store
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&store.ID, &store.Name, &store.Slug, &store.Timezone,
		&store.Phone, &store.Address, &store.CreatedAt, &store.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("store %q: %w", slug, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("getting store: %w", err)
	}

	return &store, nil
}

func (r *StoreRepo) Update(ctx context.Context, id int64, dto domain.UpdateStoreDTO) error {
	updateFields, args, argCount := []string{}, []interface{}{}, 1

	if dto.Name != nil {
		updateFields = append(updateFields, fmt.Sprintf("name = $%d", argCount))
		args = append(args, *dto.Name)
		argCount++
	}
	if dto.Timezone != nil {
		updateFields = append(updateFields, fmt.Sprintf("timezone = $%d", argCount))
		args = append(args, *dto.Timezone)
		argCount++
	}
	if dto.Phone != nil {
		updateFields = append(updateFields, fmt.Sprintf("phone = $%d", argCount))
		args = append(args, *dto.Phone)
		argCount++
	}
	if dto.Address != nil {
		updateFields = append(updateFields, fmt.Sprintf("address = $%d", argCount))
		args = append(args, *dto.Address)
		argCount++
	}

	if len(updateFields) == 0 {
		return nil
	}

	updateFields = append(updateFields, fmt.Sprintf("updated_at = $%d", argCount))
	args = append(args, time.Now())
	argCount++

	args = append(args, id)
	query := fmt.Sprintf("UPDATE stores SET %s WHERE id = $%d", strings.Join(updateFields, ", "), argCount)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating store: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("store %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *StoreRepo) List(ctx context.Context, limit, offset int) ([]domain.Store, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM stores").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting stores: %w", err)
	}

	query := `
		SELECT id, name, slug, timezone, phone, address, created_at, updated_at
		FROM stores
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("listing stores: %w", err)
	}
	defer rows.Close()

	stores := make([]domain.Store, 0)
	for rows.Next() {
		var store domain.Store
		if err := rows.Scan(
			&store.ID, &store.Name, &store.Slug, &store.Timezone,
			&store.Phone, &store.Address, &store.CreatedAt, &store.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scanning store row: %w", err)
		}
		stores = append(stores, store)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating store rows: %w", err)
	}

	return stores, total, nil
}
