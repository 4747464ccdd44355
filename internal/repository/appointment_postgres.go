package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"atelier/internal/domain"
)

type AppointmentRepo struct {
	db *pgxpool.Pool
}

func NewAppointmentRepository(db *pgxpool.Pool) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

// exclusionViolation is SQLSTATE 23P01, raised by the overlap exclusion
// constraint on appointments when two blocking intervals collide.
const exclusionViolation = "23P01"

func (r *AppointmentRepo) Create(ctx context.Context, rec domain.CreateAppointmentRecord) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	conflictQuery := `
		SELECT COUNT(*)
		FROM appointments
		WHERE artist_id = $1
		  AND status NOT IN ('cancelled', 'no_show')
		  AND start_time < $3
		  AND end_time > $2
	`

	var conflicts int
	err = tx.QueryRow(ctx, conflictQuery, rec.ArtistID, rec.StartTime, rec.EndTime).Scan(&conflicts)
	if err != nil {
		return 0, fmt.Errorf("checking for conflicting appointments: %w", err)
	}
	if conflicts > 0 {
		return 0, domain.ErrSlotTaken
	}

	insertQuery := `
		INSERT INTO appointments (store_id, client_id, artist_id, service_id, start_time, end_time, status, price, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending', $7, $8, $9, $9)
		RETURNING id
	`

	var id int64
	err = tx.QueryRow(ctx, insertQuery,
		rec.StoreID, rec.ClientID, rec.ArtistID, rec.ServiceID,
		rec.StartTime, rec.EndTime, rec.Price, rec.Notes, time.Now(),
	).Scan(&id)
	if err != nil {
		if isExclusionViolation(err) {
			return 0, domain.ErrSlotTaken
		}
		return 0, fmt.Errorf("inserting appointment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isExclusionViolation(err) {
			return 0, domain.ErrSlotTaken
		}
		return 0, fmt.Errorf("committing appointment: %w", err)
	}

	return id, nil
}

func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == exclusionViolation
}

const appointmentSelect = `
	SELECT a.id, a.store_id, a.client_id, a.artist_id, a.service_id,
	       a.start_time, a.end_time, a.status, a.price, a.notes,
	       a.created_at, a.updated_at,
	       c.first_name || ' ' || c.last_name AS client_name, c.phone AS client_phone,
	       ar.name AS artist_name, s.name AS service_name
	FROM appointments a
	JOIN clients c ON c.id = a.client_id
	JOIN artists ar ON ar.id = a.artist_id
	JOIN services s ON s.id = a.service_id
`

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var appt domain.Appointment
	err := row.Scan(
		&appt.ID, &appt.StoreID, &appt.ClientID, &appt.ArtistID, &appt.ServiceID,
		&appt.StartTime, &appt.EndTime, &appt.Status, &appt.Price, &appt.Notes,
		&appt.CreatedAt, &appt.UpdatedAt,
		&appt.ClientName, &appt.ClientPhone, &appt.ArtistName, &appt.ServiceName,
	)
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	query := appointmentSelect + " WHERE a.id = $1"

	appt, err := scanAppointment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("appointment %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("getting appointment: %w", err)
	}

	return appt, nil
}

func (r *AppointmentRepo) Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error {
	updateFields, args, argCount := []string{}, []interface{}{}, 1

	if dto.Status != nil {
		updateFields = append(updateFields, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *dto.Status)
		argCount++
	}
	if dto.StartTime != nil {
		updateFields = append(updateFields, fmt.Sprintf("start_time = $%d", argCount))
		args = append(args, *dto.StartTime)
		argCount++
	}
	if dto.EndTime != nil {
		updateFields = append(updateFields, fmt.Sprintf("end_time = $%d", argCount))
		args = append(args, *dto.EndTime)
		argCount++
	}
	if dto.Notes != nil {
		updateFields = append(updateFields, fmt.Sprintf("notes = $%d", argCount))
		args = append(args, *dto.Notes)
		argCount++
	}

	if len(updateFields) == 0 {
		return nil
	}

	updateFields = append(updateFields, fmt.Sprintf("updated_at = $%d", argCount))
	args = append(args, time.Now())
	argCount++

	args = append(args, id)
	query := fmt.Sprintf("UPDATE appointments SET %s WHERE id = $%d", strings.Join(updateFields, ", "), argCount)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if isExclusionViolation(err) {
			return domain.ErrSlotTaken
		}
		return fmt.Errorf("updating appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("appointment %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	query := `UPDATE appointments SET status = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.db.Exec(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("updating appointment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("appointment %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func appointmentConditions(filter domain.AppointmentFilter) ([]string, []interface{}, int) {
	conditions, args, argCount := []string{}, []interface{}{}, 1

	if filter.StoreID != nil {
		conditions = append(conditions, fmt.Sprintf("a.store_id = $%d", argCount))
		args = append(args, *filter.StoreID)
		argCount++
	}
	if filter.ClientID != nil {
		conditions = append(conditions, fmt.Sprintf("a.client_id = $%d", argCount))
		args = append(args, *filter.ClientID)
		argCount++
	}
	if filter.ArtistID != nil {
		conditions = append(conditions, fmt.Sprintf("a.artist_id = $%d", argCount))
		args = append(args, *filter.ArtistID)
		argCount++
	}
	if filter.ServiceID != nil {
		conditions = append(conditions, fmt.Sprintf("a.service_id = $%d", argCount))
		args = append(args, *filter.ServiceID)
		argCount++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argCount))
		args = append(args, *filter.Status)
		argCount++
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.start_time >= $%d", argCount))
		args = append(args, *filter.StartDate)
		argCount++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.start_time < $%d", argCount))
		args = append(args, *filter.EndDate)
		argCount++
	}

	return conditions, args, argCount
}

func (r *AppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	conditions, args, argCount := appointmentConditions(filter)

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		%s
		%s
		ORDER BY a.start_time
		LIMIT $%d OFFSET $%d
	`, appointmentSelect, whereClause, argCount, argCount+1)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *AppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	conditions, args, _ := appointmentConditions(filter)

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf("SELECT COUNT(*) FROM appointments a %s", whereClause)

	var total int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("counting appointments: %w", err)
	}

	return total, nil
}

func (r *AppointmentRepo) ListForArtistInterval(ctx context.Context, artistID int64, from, to time.Time) ([]domain.Appointment, error) {
	query := appointmentSelect + `
		WHERE a.artist_id = $1
		  AND a.status NOT IN ('cancelled', 'no_show')
		  AND a.start_time < $3
		  AND a.end_time > $2
		ORDER BY a.start_time
	`

	rows, err := r.db.Query(ctx, query, artistID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing appointments for artist interval: %w", err)
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *AppointmentRepo) CountConflicts(ctx context.Context, artistID int64, start, end time.Time, excludeID *int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM appointments
		WHERE artist_id = $1
		  AND status NOT IN ('cancelled', 'no_show')
		  AND start_time < $3
		  AND end_time > $2
	`
	args := []interface{}{artistID, start, end}

	if excludeID != nil {
		query += " AND id != $4"
		args = append(args, *excludeID)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting conflicting appointments: %w", err)
	}

	return count, nil
}

func (r *AppointmentRepo) ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Appointment, error) {
	query := appointmentSelect + `
		WHERE a.status IN ('pending', 'confirmed')
		  AND a.start_time >= $1
		  AND a.start_time < $2
		ORDER BY a.start_time
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing upcoming appointments: %w", err)
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func collectAppointments(rows pgx.Rows) ([]domain.Appointment, error) {
	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning appointment row: %w", err)
		}
		appointments = append(appointments, *appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating appointment rows: %w", err)
	}

	return appointments, nil
}
