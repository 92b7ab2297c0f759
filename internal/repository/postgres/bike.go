package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/repository"

	"github.com/lib/pq"
)

type bikeRepository struct {
	db *sql.DB
}

func NewBikeRepository(db *sql.DB) repository.BikeRepository {
	return &bikeRepository{db: db}
}

const bikeColumns = `id, inventory_no, frame_no, brand, model, color, frame_size, type,
	price_1day_cents, price_3day_cents, price_5day_cents, status, check_status, condition,
	acquired_on::text, last_service_on::text, next_service_on::text, notes,
	created_on::text, updated_on::text`

func scanBike(row interface{ Scan(...any) error }) (*domain.Bike, error) {
	b := &domain.Bike{}
	err := row.Scan(&b.ID, &b.InventoryNo, &b.FrameNo, &b.Brand, &b.Model, &b.Color, &b.FrameSize, &b.Type,
		&b.Price1DayCents, &b.Price3DayCents, &b.Price5DayCents, &b.Status, &b.CheckStatus, &b.Condition,
		&b.AcquiredOn, &b.LastServiceOn, &b.NextServiceOn, &b.Notes, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bikeRepository) Create(ctx context.Context, bike *domain.Bike) error {
	query := `INSERT INTO bikes (inventory_no, frame_no, brand, model, color, frame_size, type,
	            price_1day_cents, price_3day_cents, price_5day_cents, status, check_status, condition,
	            acquired_on, last_service_on, next_service_on, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	          RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		bike.InventoryNo, bike.FrameNo, bike.Brand, bike.Model, bike.Color, bike.FrameSize, bike.Type,
		bike.Price1DayCents, bike.Price3DayCents, bike.Price5DayCents, bike.Status, bike.CheckStatus,
		bike.Condition, bike.AcquiredOn, bike.LastServiceOn, bike.NextServiceOn, bike.Notes,
		time.Now(), time.Now()).Scan(&bike.ID)
	return mapError(err)
}

func (r *bikeRepository) GetByID(ctx context.Context, id int32) (*domain.Bike, error) {
	query := `SELECT ` + bikeColumns + ` FROM bikes WHERE id = $1`
	b, err := scanBike(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return b, nil
}

func (r *bikeRepository) Update(ctx context.Context, bike *domain.Bike) error {
	query := `UPDATE bikes SET inventory_no=$1, frame_no=$2, brand=$3, model=$4, color=$5, frame_size=$6,
	            type=$7, price_1day_cents=$8, price_3day_cents=$9, price_5day_cents=$10, status=$11,
	            check_status=$12, condition=$13, acquired_on=$14, last_service_on=$15, next_service_on=$16,
	            notes=$17, updated_on=$18
	          WHERE id=$19`
	res, err := r.db.ExecContext(ctx, query,
		bike.InventoryNo, bike.FrameNo, bike.Brand, bike.Model, bike.Color, bike.FrameSize, bike.Type,
		bike.Price1DayCents, bike.Price3DayCents, bike.Price5DayCents, bike.Status, bike.CheckStatus,
		bike.Condition, bike.AcquiredOn, bike.LastServiceOn, bike.NextServiceOn, bike.Notes,
		time.Now(), bike.ID)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bikeRepository) UpdateStatus(ctx context.Context, id int32, status domain.BikeStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE bikes SET status=$1, updated_on=$2 WHERE id=$3`, status, time.Now(), id)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bikeRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bikes WHERE id=$1`, id)
	if err != nil {
		// A restricting FK here means the bike is still referenced, which
		// is a conflict on this path, not a missing row.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return fmt.Errorf("%w: bike %d is still referenced by bookings", domain.ErrConflict, id)
		}
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bikeRepository) List(ctx context.Context, filter repository.BikeFilter) ([]domain.Bike, int32, error) {
	query := `SELECT ` + bikeColumns + ` FROM bikes WHERE 1=1`
	var args []interface{}
	argIdx := 1

	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", argIdx)
		args = append(args, filter.Type)
		argIdx++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (inventory_no ILIKE $%d OR brand ILIKE $%d OR model ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, mapError(err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY inventory_no LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, filter.Skip)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var bikes []domain.Bike
	for rows.Next() {
		b, err := scanBike(rows)
		if err != nil {
			return nil, 0, err
		}
		bikes = append(bikes, *b)
	}
	return bikes, count, rows.Err()
}

func (r *bikeRepository) CountFleet(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM bikes WHERE type IS NOT NULL`).Scan(&count)
	return count, mapError(err)
}

func (r *bikeRepository) TypeSummaries(ctx context.Context) ([]repository.TypeSummary, error) {
	query := `SELECT type, count(*), min(price_1day_cents), min(price_3day_cents), min(price_5day_cents)
	          FROM bikes WHERE type IS NOT NULL GROUP BY type ORDER BY type`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var summaries []repository.TypeSummary
	for rows.Next() {
		var s repository.TypeSummary
		if err := rows.Scan(&s.Type, &s.Total, &s.MinPrice1Cents, &s.MinPrice3Cents, &s.MinPrice5Cents); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *bikeRepository) MinPricesForType(ctx context.Context, bikeType string) (*repository.TypeSummary, error) {
	query := `SELECT count(*), min(price_1day_cents), min(price_3day_cents), min(price_5day_cents)
	          FROM bikes WHERE type = $1 AND status = $2`
	s := repository.TypeSummary{Type: bikeType}
	err := r.db.QueryRowContext(ctx, query, bikeType, domain.BikeStatusAvailable).
		Scan(&s.Total, &s.MinPrice1Cents, &s.MinPrice3Cents, &s.MinPrice5Cents)
	if err != nil {
		return nil, mapError(err)
	}
	if s.Total == 0 || s.MinPrice1Cents == nil {
		return nil, fmt.Errorf("%w: bike type %q has no available priced bikes", domain.ErrValidation, bikeType)
	}
	return &s, nil
}

func (r *bikeRepository) SyncStatuses(ctx context.Context) (int32, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	// Bikes with a live booking become RENTED.
	res, err := tx.ExecContext(ctx, `
		UPDATE bikes SET status = $1, updated_on = $2
		WHERE status = $3
		  AND EXISTS (SELECT 1 FROM bookings
		              WHERE bookings.bike_id = bikes.id AND bookings.status IN ($4, $5))`,
		domain.BikeStatusRented, time.Now(), domain.BikeStatusAvailable,
		domain.BookingStatusReserved, domain.BookingStatusActive)
	if err != nil {
		return 0, mapError(err)
	}
	rented, _ := res.RowsAffected()

	// RENTED bikes without a live booking become AVAILABLE again.
	// MAINTENANCE and DEFECTIVE are staff-managed and stay as they are.
	res, err = tx.ExecContext(ctx, `
		UPDATE bikes SET status = $1, updated_on = $2
		WHERE status = $3
		  AND NOT EXISTS (SELECT 1 FROM bookings
		                  WHERE bookings.bike_id = bikes.id AND bookings.status IN ($4, $5))`,
		domain.BikeStatusAvailable, time.Now(), domain.BikeStatusRented,
		domain.BookingStatusReserved, domain.BookingStatusActive)
	if err != nil {
		return 0, mapError(err)
	}
	freed, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int32(rented + freed), nil
}
