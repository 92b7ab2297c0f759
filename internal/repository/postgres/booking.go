package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/repository"

	"github.com/lib/pq"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, bike_id, customer_id, status, start_date::text, end_date::text,
	start_time::text, end_time::text, return_date::text, unit_count, day_price_cents, day_count,
	total_price_cents, deposit_cents, deposit_returned, paid, paid_on::text, id_checked,
	picked_up, pickup_time::text, condition_out, condition_in, damage_notes, notes,
	created_on::text, updated_on::text`

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(&b.ID, &b.BikeID, &b.CustomerID, &b.Status, &b.StartDate, &b.EndDate,
		&b.StartTime, &b.EndTime, &b.ReturnDate, &b.UnitCount, &b.DayPriceCents, &b.DayCount,
		&b.TotalPriceCents, &b.DepositCents, &b.DepositReturned, &b.Paid, &b.PaidOn, &b.IDChecked,
		&b.PickedUp, &b.PickupTime, &b.ConditionOut, &b.ConditionIn, &b.DamageNotes, &b.Notes,
		&b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return b, nil
}

const insertBooking = `INSERT INTO bookings (bike_id, customer_id, status, start_date, end_date,
	start_time, end_time, unit_count, day_price_cents, day_count, total_price_cents, deposit_cents,
	id_checked, condition_out, notes, created_on, updated_on)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	RETURNING id`

func insertBookingArgs(b *domain.Booking) []interface{} {
	return []interface{}{
		b.BikeID, b.CustomerID, b.Status, b.StartDate, b.EndDate, b.StartTime, b.EndTime,
		b.UnitCount, b.DayPriceCents, b.DayCount, b.TotalPriceCents, b.DepositCents,
		b.IDChecked, b.ConditionOut, b.Notes, time.Now(), time.Now(),
	}
}

func (r *bookingRepository) CreateClassic(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Application-level overlap check for a clean error message. The
	// bookings_no_overlap exclusion constraint is the backstop if two
	// requests race past this point.
	var overlapping int32
	err = tx.QueryRowContext(ctx, `
		SELECT count(*) FROM bookings
		WHERE bike_id = $1 AND status IN ($2, $3)
		  AND start_date <= $5 AND end_date >= $4`,
		*b.BikeID, domain.BookingStatusReserved, domain.BookingStatusActive,
		b.StartDate, b.EndDate).Scan(&overlapping)
	if err != nil {
		return mapError(err)
	}
	if overlapping > 0 {
		return fmt.Errorf("%w: bike %d is already booked between %s and %s",
			domain.ErrConflict, *b.BikeID, b.StartDate, b.EndDate)
	}

	if err := tx.QueryRowContext(ctx, insertBooking, insertBookingArgs(b)...).Scan(&b.ID); err != nil {
		return mapError(err)
	}

	// The bike is only flipped when the booking starts out ACTIVE;
	// reservations leave the physical unit available on the floor.
	if b.Status == domain.BookingStatusActive {
		if _, err := tx.ExecContext(ctx, `UPDATE bikes SET status=$1, updated_on=$2 WHERE id=$3`,
			domain.BikeStatusRented, time.Now(), *b.BikeID); err != nil {
			return mapError(err)
		}
	}

	return tx.Commit()
}

func (r *bookingRepository) CreatePooled(ctx context.Context, b *domain.Booking) error {
	// Serializable so the capacity check and the insert cannot interleave
	// with a concurrent pooled booking of the same type.
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, pos := range b.Positions {
		var total int32
		if err := tx.QueryRowContext(ctx,
			`SELECT count(*) FROM bikes WHERE type = $1`, pos.BikeType).Scan(&total); err != nil {
			return mapError(err)
		}

		var pooled int32
		err = tx.QueryRowContext(ctx, `
			SELECT COALESCE(SUM(p.count), 0) FROM booking_positions p
			JOIN bookings bk ON bk.id = p.booking_id
			WHERE p.bike_type = $1 AND bk.status IN ($2, $3)
			  AND bk.start_date <= $5 AND bk.end_date >= $4`,
			pos.BikeType, domain.BookingStatusReserved, domain.BookingStatusActive,
			b.StartDate, b.EndDate).Scan(&pooled)
		if err != nil {
			return mapError(err)
		}

		var classic int32
		err = tx.QueryRowContext(ctx, `
			SELECT COALESCE(SUM(bk.unit_count), 0) FROM bookings bk
			JOIN bikes bi ON bi.id = bk.bike_id
			WHERE bi.type = $1 AND bk.status IN ($2, $3)
			  AND bk.start_date <= $5 AND bk.end_date >= $4`,
			pos.BikeType, domain.BookingStatusReserved, domain.BookingStatusActive,
			b.StartDate, b.EndDate).Scan(&classic)
		if err != nil {
			return mapError(err)
		}

		if pooled+classic+pos.Count > total {
			return fmt.Errorf("%w: only %d of %d %q bikes free between %s and %s",
				domain.ErrConflict, total-pooled-classic, total, pos.BikeType, b.StartDate, b.EndDate)
		}
	}

	if err := tx.QueryRowContext(ctx, insertBooking, insertBookingArgs(b)...).Scan(&b.ID); err != nil {
		return mapError(err)
	}

	for i := range b.Positions {
		pos := &b.Positions[i]
		pos.BookingID = b.ID
		err := tx.QueryRowContext(ctx, `
			INSERT INTO booking_positions (booking_id, bike_type, count, day_price_cents, day_count, total_price_cents)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			pos.BookingID, pos.BikeType, pos.Count, pos.DayPriceCents, pos.DayCount, pos.TotalPriceCents).
			Scan(&pos.ID)
		if err != nil {
			return mapError(err)
		}
	}

	return tx.Commit()
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	if err := r.loadPositions(ctx, []*domain.Booking{b}); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET status=$1, start_date=$2, end_date=$3, start_time=$4, end_time=$5,
	            return_date=$6, deposit_returned=$7, paid=$8, paid_on=$9, id_checked=$10, picked_up=$11,
	            pickup_time=$12, condition_out=$13, condition_in=$14, damage_notes=$15, notes=$16,
	            updated_on=$17
	          WHERE id=$18`
	res, err := r.db.ExecContext(ctx, query,
		b.Status, b.StartDate, b.EndDate, b.StartTime, b.EndTime, b.ReturnDate,
		b.DepositReturned, b.Paid, b.PaidOn, b.IDChecked, b.PickedUp, b.PickupTime,
		b.ConditionOut, b.ConditionIn, b.DamageNotes, b.Notes, time.Now(), b.ID)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookingRepository) List(ctx context.Context, filter repository.BookingFilter) ([]domain.Booking, int32, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`
	var args []interface{}
	argIdx := 1

	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.CustomerID > 0 {
		query += fmt.Sprintf(" AND customer_id = $%d", argIdx)
		args = append(args, filter.CustomerID)
		argIdx++
	}
	if filter.FromDate != "" {
		query += fmt.Sprintf(" AND start_date >= $%d", argIdx)
		args = append(args, filter.FromDate)
		argIdx++
	}
	if filter.ToDate != "" {
		query += fmt.Sprintf(" AND end_date <= $%d", argIdx)
		args = append(args, filter.ToDate)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, mapError(err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(" ORDER BY start_date DESC, id DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, filter.Skip)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	refs := make([]*domain.Booking, len(bookings))
	for i := range bookings {
		refs[i] = &bookings[i]
	}
	if err := r.loadPositions(ctx, refs); err != nil {
		return nil, 0, err
	}
	return bookings, count, nil
}

func (r *bookingRepository) ListOverlapping(ctx context.Context, fromDate, toDate string) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `, bike_type, customer_first_name, customer_last_name FROM (
	          SELECT bk.*, bi.type AS bike_type, c.first_name AS customer_first_name, c.last_name AS customer_last_name
	          FROM bookings bk
	          LEFT JOIN bikes bi ON bi.id = bk.bike_id
	          LEFT JOIN customers c ON c.id = bk.customer_id
	          WHERE bk.status IN ($1, $2) AND bk.start_date <= $4 AND bk.end_date >= $3
	          ORDER BY bk.start_date, bk.id) AS sub`
	rows, err := r.db.QueryContext(ctx, query,
		domain.BookingStatusReserved, domain.BookingStatusActive, fromDate, toDate)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b := &domain.Booking{}
		var bikeType, firstName, lastName *string
		err := rows.Scan(&b.ID, &b.BikeID, &b.CustomerID, &b.Status, &b.StartDate, &b.EndDate,
			&b.StartTime, &b.EndTime, &b.ReturnDate, &b.UnitCount, &b.DayPriceCents, &b.DayCount,
			&b.TotalPriceCents, &b.DepositCents, &b.DepositReturned, &b.Paid, &b.PaidOn, &b.IDChecked,
			&b.PickedUp, &b.PickupTime, &b.ConditionOut, &b.ConditionIn, &b.DamageNotes, &b.Notes,
			&b.CreatedOn, &b.UpdatedOn, &bikeType, &firstName, &lastName)
		if err != nil {
			return nil, err
		}
		if b.BikeID != nil {
			b.Bike = &domain.Bike{ID: *b.BikeID, Type: bikeType}
		}
		if b.CustomerID != nil {
			c := &domain.Customer{ID: *b.CustomerID}
			if firstName != nil {
				c.FirstName = *firstName
			}
			if lastName != nil {
				c.LastName = *lastName
			}
			b.Customer = c
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*domain.Booking, len(bookings))
	for i := range bookings {
		refs[i] = &bookings[i]
	}
	if err := r.loadPositions(ctx, refs); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) HasLiveForBike(ctx context.Context, bikeID int32) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM bookings WHERE bike_id = $1 AND status IN ($2, $3))`,
		bikeID, domain.BookingStatusReserved, domain.BookingStatusActive).Scan(&exists)
	return exists, mapError(err)
}

// loadPositions attaches positions to the given bookings in one query.
func (r *bookingRepository) loadPositions(ctx context.Context, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	byID := make(map[int32]*domain.Booking, len(bookings))
	ids := make([]int32, 0, len(bookings))
	for _, b := range bookings {
		byID[b.ID] = b
		ids = append(ids, b.ID)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, booking_id, bike_type, count, day_price_cents, day_count, total_price_cents
		FROM booking_positions WHERE booking_id = ANY($1) ORDER BY id`, pq.Array(ids))
	if err != nil {
		return mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.BookingPosition
		if err := rows.Scan(&p.ID, &p.BookingID, &p.BikeType, &p.Count, &p.DayPriceCents, &p.DayCount, &p.TotalPriceCents); err != nil {
			return err
		}
		if b, ok := byID[p.BookingID]; ok {
			b.Positions = append(b.Positions, p)
		}
	}
	return rows.Err()
}
