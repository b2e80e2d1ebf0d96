package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/vladislavdragonenkov/windowcleaning/internal/domain"
)

const bookingColumns = `id, customer_id, booking_date`

type bookingRepository struct {
	db *sql.DB
}

// NewBookingRepository создаёт PostgreSQL-реализацию BookingRepository.
func NewBookingRepository(store *Store) domain.BookingRepository {
	return &bookingRepository{db: store.DB()}
}

func (r *bookingRepository) Save(ctx context.Context, booking domain.Booking) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bookings (id, customer_id, booking_date)
		VALUES ($1, $2, $3)
	`, booking.ID, booking.CustomerID, dateArg(booking.Date))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewDuplicateEntity("Booking")
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id int) (domain.Booking, bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	booking, err := scanBooking(r.db.QueryRowContext(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Booking{}, false, nil
	}
	if err != nil {
		return domain.Booking{}, false, fmt.Errorf("select booking %d: %w", id, err)
	}
	return booking, true, nil
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]domain.Booking, error) {
	return r.query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		ORDER BY id
	`)
}

func (r *bookingRepository) FindByDate(ctx context.Context, date civil.Date) ([]domain.Booking, error) {
	return r.query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE booking_date = $1
		ORDER BY id
	`, dateArg(date))
}

func (r *bookingRepository) FindByCustomerID(ctx context.Context, customerID int) ([]domain.Booking, error) {
	return r.query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE customer_id = $1
		ORDER BY id
	`, customerID)
}

func (r *bookingRepository) FindByDateRange(ctx context.Context, start, end civil.Date) ([]domain.Booking, error) {
	return r.query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE booking_date BETWEEN $1 AND $2
		ORDER BY id
	`, dateArg(start), dateArg(end))
}

func (r *bookingRepository) query(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select bookings: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		result = append(result, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (domain.Booking, error) {
	var (
		booking domain.Booking
		date    time.Time
	)
	if err := row.Scan(&booking.ID, &booking.CustomerID, &date); err != nil {
		return domain.Booking{}, err
	}
	booking.Date = civil.DateOf(date)
	return booking, nil
}

// dateArg передаёт календарную дату как полночь UTC; DATE-колонка отбрасывает время.
func dateArg(d civil.Date) time.Time {
	return d.In(time.UTC)
}

var _ domain.BookingRepository = (*bookingRepository)(nil)
