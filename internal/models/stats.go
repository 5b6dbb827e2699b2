package models

// Stats carries the aggregate counts shown on the admin dashboard.
// Bookings are owned by another module; here they are only a countable
// collection.
type Stats struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalPlaces   int64 `json:"totalPlaces"`
	TotalBookings int64 `json:"totalBookings"`
}
