package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"atelier/internal/domain"
)

type ClientRepo struct {
	db *pgxpool.Pool
}

func NewClientRepository(db *pgxpool.Pool) *ClientRepo {
	return &ClientRepo{db: db}
}

const clientColumns = "id, store_id, first_name, last_name, phone, email, birth_date, guardian, medical, created_at, updated_at"

func (r *ClientRepo) Create(ctx context.Context, storeID int64, dto domain.CreateClientDTO) (int64, error) {
	var guardianJSON, medicalJSON []byte
	var err error
	if dto.Guardian != nil {
		if guardianJSON, err = json.Marshal(dto.Guardian); err != nil {
			return 0, fmt.Errorf("encoding guardian: %w", err)
		}
	}
	if dto.Medical != nil {
		if medicalJSON, err = json.Marshal(dto.Medical); err != nil {
			return 0, fmt.Errorf("encoding medical info: %w", err)
		}
	}

	query := `
		INSERT INTO clients (store_id, first_name, last_name, phone, email, birth_date, guardian, medical, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id
	`

	var id int64
	err = r.db.QueryRow(ctx, query,
		storeID, dto.FirstName, dto.LastName, dto.Phone, dto.Email,
		dto.BirthDate, guardianJSON, medicalJSON, time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating client: %w", err)
	}

	return id, nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	query := fmt.Sprintf("SELECT %s FROM clients WHERE id = $1", clientColumns)

	client, err := scanClient(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("client %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}

	return client, nil
}

// GetByPhone looks a client up by phone within one store. Booking uses it to
// reattach returning clients to their history instead of duplicating them.
func (r *ClientRepo) GetByPhone(ctx context.Context, storeID int64, phone string) (*domain.Client, error) {
	query := fmt.Sprintf("SELECT %s FROM clients WHERE store_id = $1 AND phone = $2", clientColumns)

	client, err := scanClient(r.db.QueryRow(ctx, query, storeID, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("client with phone %s: %w", phone, domain.ErrNotFound)
		}
		return nil, err
	}

	return client, nil
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var client domain.Client
	var guardianJSON, medicalJSON []byte

	err := row.Scan(
		&client.ID, &client.StoreID, &client.FirstName, &client.LastName,
		&client.Phone, &client.Email, &client.BirthDate,
		&guardianJSON, &medicalJSON, &client.CreatedAt, &client.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(guardianJSON) > 0 {
		if err := json.Unmarshal(guardianJSON, &client.Guardian); err != nil {
			return nil, fmt.Errorf("decoding guardian for client %d: %w", client.ID, err)
		}
	}
	if len(medicalJSON) > 0 {
		if err := json.Unmarshal(medicalJSON, &client.Medical); err != nil {
			return nil, fmt.Errorf("decoding medical info for client %d: %w", client.ID, err)
		}
	}

	return &client, nil
}

func (r *ClientRepo) Update(ctx context.Context, id int64, dto domain.UpdateClientDTO) error {
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
	if dto.Email != nil {
		updateFields = append(updateFields, fmt.Sprintf("email = $%d", argCount))
		args = append(args, *dto.Email)
		argCount++
	}
	if dto.BirthDate != nil {
		updateFields = append(updateFields, fmt.Sprintf("birth_date = $%d", argCount))
		args = append(args, *dto.BirthDate)
		argCount++
	}
	if dto.Guardian != nil {
		guardianJSON, err := json.Marshal(dto.Guardian)
		if err != nil {
			return fmt.Errorf("encoding guardian: %w", err)
		}
		updateFields = append(updateFields, fmt.Sprintf("guardian = $%d", argCount))
		args = append(args, guardianJSON)
		argCount++
	}
	if dto.Medical != nil {
		medicalJSON, err := json.Marshal(dto.Medical)
		if err != nil {
			return fmt.Errorf("encoding medical info: %w", err)
		}
		updateFields = append(updateFields, fmt.Sprintf("medical = $%d", argCount))
		args = append(args, medicalJSON)
		argCount++
	}

	if len(updateFields) == 0 {
		return nil
	}

	updateFields = append(updateFields, fmt.Sprintf("updated_at = $%d", argCount))
	args = append(args, time.Now())
	argCount++

	args = append(args, id)
	query := fmt.Sprintf("UPDATE clients SET %s WHERE id = $%d", strings.Join(updateFields, ", "), argCount)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("client %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *ClientRepo) List(ctx context.Context, filter domain.ClientFilter) ([]domain.Client, int, error) {
	conditions, args, argCount := []string{}, []interface{}{}, 1

	if filter.StoreID != nil {
		conditions = append(conditions, fmt.Sprintf("store_id = $%d", argCount))
		args = append(args, *filter.StoreID)
		argCount++
	}
	if filter.Search != nil {
		pattern := "%" + *filter.Search + "%"
		conditions = append(conditions, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR phone ILIKE $%d)", argCount, argCount, argCount,
		))
		args = append(args, pattern)
		argCount++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM clients %s", whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting clients: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM clients
		%s
		ORDER BY last_name, first_name
		LIMIT $%d OFFSET $%d
	`, clientColumns, whereClause, argCount, argCount+1)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	clients := make([]domain.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning client row: %w", err)
		}
		clients = append(clients, *client)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating client rows: %w", err)
	}

	return clients, total, nil
}

// ListWithBirthday returns every client whose birthday falls on the given
// month and day, across all stores. The daily greeting scan runs on it.
func (r *ClientRepo) ListWithBirthday(ctx context.Context, month time.Month, day int) ([]domain.Client, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM clients
		WHERE birth_date IS NOT NULL
		  AND EXTRACT(MONTH FROM birth_date) = $1
		  AND EXTRACT(DAY FROM birth_date) = $2
		ORDER BY store_id, id
	`, clientColumns)

	rows, err := r.db.Query(ctx, query, int(month), day)
	if err != nil {
		return nil, fmt.Errorf("listing birthday clients: %w", err)
	}
	defer rows.Close()

	clients := make([]domain.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client row: %w", err)
		}
		clients = append(clients, *client)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client rows: %w", err)
	}

	return clients, nil
}
