package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"atelier/internal/domain"
)

type CommunicationRepo struct {
	db *pgxpool.Pool
}

func NewCommunicationRepository(db *pgxpool.Pool) *CommunicationRepo {
	return &CommunicationRepo{db: db}
}

func (r *CommunicationRepo) Create(ctx context.Context, comm domain.Communication) (int64, error) {
	query := `
		INSERT INTO communications (store_id, client_id, appointment_id, kind, channel, body, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		comm.StoreID, comm.ClientID, comm.AppointmentID, comm.Kind, comm.Channel, comm.Body, comm.SentAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating communication record: %w", err)
	}

	return id, nil
}

func (r *CommunicationRepo) List(ctx context.Context, filter domain.CommunicationFilter) ([]domain.Communication, int, error) {
	conditions, args, argCount := []string{}, []interface{}{}, 1

	if filter.StoreID != nil {
		conditions = append(conditions, fmt.Sprintf("store_id = $%d", argCount))
		args = append(args, *filter.StoreID)
		argCount++
	}
	if filter.ClientID != nil {
		conditions = append(conditions, fmt.Sprintf("client_id = $%d", argCount))
		args = append(args, *filter.ClientID)
		argCount++
	}
	if filter.Kind != nil {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", argCount))
		args = append(args, *filter.Kind)
		argCount++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM communications %s", whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting communications: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT id, store_id, client_id, appointment_id, kind, channel, body, sent_at
		FROM communications
		%s
		ORDER BY sent_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argCount, argCount+1)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing communications: %w", err)
	}
	defer rows.Close()

	comms := make([]domain.Communication, 0)
	for rows.Next() {
		var comm domain.Communication
		err := rows.Scan(
			&comm.ID, &comm.StoreID, &comm.ClientID, &comm.AppointmentID,
			&comm.Kind, &comm.Channel, &comm.Body, &comm.SentAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning communication row: %w", err)
		}
		comms = append(comms, comm)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating communication rows: %w", err)
	}

	return comms, total, nil
}
