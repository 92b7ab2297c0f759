package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.BikeRepository
	repository.BookingRepository
	repository.CustomerRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		BikeRepository:     NewBikeRepository(db),
		BookingRepository:  NewBookingRepository(db),
		CustomerRepository: NewCustomerRepository(db),
	}
}

// mapError translates driver-level failures into the domain error kinds.
// 23505 is unique_violation (duplicate inventory number), 23P01 is
// exclusion_violation (the date-range constraint caught a double booking
// that raced past the application-level check), 23503 is a foreign key
// pointing at a missing row.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505", "23P01":
			return fmt.Errorf("%w: %s", domain.ErrConflict, pqErr.Message)
		case "23503":
			return fmt.Errorf("%w: %s", domain.ErrNotFound, pqErr.Message)
		}
	}
	return err
}
