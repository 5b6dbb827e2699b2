package repositories

import "context"

// BookingRepository exposes bookings only as a countable collection. The
// booking schema belongs to another module; the admin dashboard just needs
// the total.
type BookingRepository interface {
	Count(ctx context.Context) (int64, error)
}

type bookingRepo struct {
	db Database
}

func NewBookingRepo(db Database) BookingRepository {
	return &bookingRepo{db: db}
}

func (r *bookingRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count)
	return count, err
}
