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

type ArtistRepo struct {
	db *pgxpool.Pool
}

func NewArtistRepository(db *pgxpool.Pool) *ArtistRepo {
	return &ArtistRepo{db: db}
}

const artistColumns = "id, store_id, name, phone, email, bio, photo_url, schedule, calendar_provider, calendar_id, is_active, created_at, updated_at"

func (r *ArtistRepo) Create(ctx context.Context, storeID int64, dto domain.CreateArtistDTO) (int64, error) {
	week := dto.Schedule
	if week == nil {
		week = domain.DefaultWeekSchedule()
	}
	if err := week.Validate(); err != nil {
		return 0, err
	}

	scheduleJSON, err := json.Marshal(week)
	if err != nil {
		return 0, fmt.Errorf("encoding schedule: %w", err)
	}

	query := `
		INSERT INTO artists (store_id, name, phone, email, bio, photo_url, schedule, calendar_provider, calendar_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, '', $6, '', '', TRUE, $7, $7)
		RETURNING id
	`

	var id int64
	err = r.db.QueryRow(ctx, query,
		storeID, dto.Name, dto.Phone, dto.Email, dto.Bio, scheduleJSON, time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating artist: %w", err)
	}

	return id, nil
}

func (r *ArtistRepo) GetByID(ctx context.Context, id int64) (*domain.Artist, error) {
	query := fmt.Sprintf("SELECT %s FROM artists WHERE id = $1", artistColumns)

	artist, err := scanArtist(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("artist %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}

	return artist, nil
}

// scanArtist decodes one artist row. A schedule document that fails to
// decode is a loud ErrMalformedSchedule, never a silent empty schedule.
func scanArtist(row pgx.Row) (*domain.Artist, error) {
	var artist domain.Artist
	var scheduleJSON []byte

	err := row.Scan(
		&artist.ID, &artist.StoreID, &artist.Name, &artist.Phone, &artist.Email,
		&artist.Bio, &artist.PhotoURL, &scheduleJSON, &artist.CalendarProvider,
		&artist.CalendarID, &artist.IsActive, &artist.CreatedAt, &artist.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(scheduleJSON) > 0 {
		if err := json.Unmarshal(scheduleJSON, &artist.Schedule); err != nil {
			return nil, fmt.Errorf("decoding schedule for artist %d: %w", artist.ID, domain.ErrMalformedSchedule)
		}
	}

	return &artist, nil
}

func (r *ArtistRepo) Update(ctx context.Context, id int64, dto domain.UpdateArtistDTO) error {
	updateFields, args, argCount := []string{}, []interface{}{}, 1

	if dto.Name != nil {
		updateFields = append(updateFields, fmt.Sprintf("name = $%d", argCount))
		args = append(args, *dto.Name)
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
	if dto.Bio != nil {
		updateFields = append(updateFields, fmt.Sprintf("bio = $%d", argCount))
		args = append(args, *dto.Bio)
		argCount++
	}
	if dto.CalendarProvider != nil {
		updateFields = append(updateFields, fmt.Sprintf("calendar_provider = $%d", argCount))
		args = append(args, *dto.CalendarProvider)
		argCount++
	}
	if dto.CalendarID != nil {
		updateFields = append(updateFields, fmt.Sprintf("calendar_id = $%d", argCount))
		args = append(args, *dto.CalendarID)
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
	query := fmt.Sprintf("UPDATE artists SET %s WHERE id = $%d", strings.Join(updateFields, ", "), argCount)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating artist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("artist %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *ArtistRepo) UpdateSchedule(ctx context.Context, id int64, schedule domain.WeekSchedule) error {
	if err := schedule.Validate(); err != nil {
		return err
	}

	scheduleJSON, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}

	query := `UPDATE artists SET schedule = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.db.Exec(ctx, query, scheduleJSON, time.Now(), id)
	if err != nil {
		return fmt.Errorf("updating artist schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("artist %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *ArtistRepo) UpdatePhoto(ctx context.Context, id int64, photoURL string) error {
	query := `UPDATE artists SET photo_url = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.db.Exec(ctx, query, photoURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("updating artist photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("artist %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *ArtistRepo) Delete(ctx context.Context, id int64) error {
	query := `UPDATE artists SET is_active = FALSE, updated_at = $1 WHERE id = $2`

	tag, err := r.db.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("deactivating artist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("artist %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *ArtistRepo) List(ctx context.Context, filter domain.ArtistFilter) ([]domain.Artist, int, error) {
	conditions, args, argCount := []string{}, []interface{}{}, 1

	if filter.StoreID != nil {
		conditions = append(conditions, fmt.Sprintf("a.store_id = $%d", argCount))
		args = append(args, *filter.StoreID)
		argCount++
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("a.is_active = $%d", argCount))
		args = append(args, *filter.Active)
		argCount++
	}
	if filter.ServiceID != nil {
		conditions = append(conditions, fmt.Sprintf("EXISTS (SELECT 1 FROM artist_services s WHERE s.artist_id = a.id AND s.service_id = $%d)", argCount))
		args = append(args, *filter.ServiceID)
		argCount++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM artists a %s", whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting artists: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT a.id, a.store_id, a.name, a.phone, a.email, a.bio, a.photo_url, a.schedule, a.calendar_provider, a.calendar_id, a.is_active, a.created_at, a.updated_at
		FROM artists a
		%s
		ORDER BY a.name
		LIMIT $%d OFFSET $%d
	`, whereClause, argCount, argCount+1)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing artists: %w", err)
	}
	defer rows.Close()

	artists := make([]domain.Artist, 0)
	for rows.Next() {
		artist, err := scanArtist(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning artist row: %w", err)
		}
		artists = append(artists, *artist)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating artist rows: %w", err)
	}

	return artists, total, nil
}

// ListByService returns the active artists of a store who perform the given
// service, in name order. Auto-selection during booking walks this list.
func (r *ArtistRepo) ListByService(ctx context.Context, storeID, serviceID int64) ([]domain.Artist, error) {
	query := `
		SELECT a.id, a.store_id, a.name, a.phone, a.email, a.bio, a.photo_url, a.schedule, a.calendar_provider, a.calendar_id, a.is_active, a.created_at, a.updated_at
		FROM artists a
		JOIN artist_services s ON s.artist_id = a.id
		WHERE a.store_id = $1 AND s.service_id = $2 AND a.is_active
		ORDER BY a.name
	`

	rows, err := r.db.Query(ctx, query, storeID, serviceID)
	if err != nil {
		return nil, fmt.Errorf("listing artists for service: %w", err)
	}
	defer rows.Close()

	artists := make([]domain.Artist, 0)
	for rows.Next() {
		artist, err := scanArtist(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning artist row: %w", err)
		}
		artists = append(artists, *artist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating artist rows: %w", err)
	}

	return artists, nil
}

func (r *ArtistRepo) AddService(ctx context.Context, artistID, serviceID int64) error {
	query := `
		INSERT INTO artist_services (artist_id, service_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	if _, err := r.db.Exec(ctx, query, artistID, serviceID); err != nil {
		return fmt.Errorf("linking artist to service: %w", err)
	}
	return nil
}

func (r *ArtistRepo) RemoveService(ctx context.Context, artistID, serviceID int64) error {
	query := `DELETE FROM artist_services WHERE artist_id = $1 AND service_id = $2`

	if _, err := r.db.Exec(ctx, query, artistID, serviceID); err != nil {
		return fmt.Errorf("unlinking artist from service: %w", err)
	}
	return nil
}
