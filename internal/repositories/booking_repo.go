package repositories

import (
	"database/sql"

	"jombo/internal/domain/models"
)

type BookingRepo struct {
	DB *sql.DB
}

const bookingColumns = `b.id, b.user_id, b.trip_id, b.seats, b.status, b.created_at, b.updated_at`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(&b.ID, &b.UserID, &b.TripID, &b.Seats, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r BookingRepo) GetByID(id int64) (models.Booking, error) {
	row := r.DB.QueryRow(`SELECT `+bookingColumns+` FROM bookings b WHERE b.id = ?`, id)
	return scanBooking(row)
}

func (r BookingRepo) Create(b models.Booking) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO bookings (user_id, trip_id, seats, status)
		VALUES (?, ?, ?, ?)`,
		b.UserID, b.TripID, b.Seats, b.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateStatusFrom flips the status only while the row still holds the
// expected one. Returns false when a concurrent transition won the race;
// the caller decides what that means.
func (r BookingRepo) UpdateStatusFrom(id int64, from, to string) (bool, error) {
	res, err := r.DB.Exec(`UPDATE bookings SET status = ? WHERE id = ? AND status = ?`, to, id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// UpdateStatusFromTx is UpdateStatusFrom inside the caller's transaction
// so the flip commits or rolls back together with the seat adjustment.
func (r BookingRepo) UpdateStatusFromTx(tx *sql.Tx, id int64, from, to string) (bool, error) {
	res, err := tx.Exec(`UPDATE bookings SET status = ? WHERE id = ? AND status = ?`, to, id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r BookingRepo) ListByUser(userID int64) ([]models.Booking, error) {
	rows, err := r.DB.Query(`
		SELECT `+bookingColumns+`
		FROM bookings b
		WHERE b.user_id = ?
		ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r BookingRepo) ListByTrip(tripID int64) ([]models.Booking, error) {
	rows, err := r.DB.Query(`
		SELECT `+bookingColumns+`
		FROM bookings b
		WHERE b.trip_id = ?
		ORDER BY b.created_at DESC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// ConfirmedByTrip returns confirmed bookings with passenger fields, used
// for the driver's manifest and message fan-out recipients.
func (r BookingRepo) ConfirmedByTrip(tripID int64) ([]models.Booking, []models.User, error) {
	rows, err := r.DB.Query(`
		SELECT `+bookingColumns+`, u.id, u.email, u.name
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		WHERE b.trip_id = ? AND b.status = ?
		ORDER BY b.created_at ASC`, tripID, models.BookingConfirmed)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	bookings := []models.Booking{}
	users := []models.User{}
	for rows.Next() {
		var b models.Booking
		var u models.User
		if err := rows.Scan(&b.ID, &b.UserID, &b.TripID, &b.Seats, &b.Status, &b.CreatedAt, &b.UpdatedAt,
			&u.ID, &u.Email, &u.Name); err != nil {
			return nil, nil, err
		}
		bookings = append(bookings, b)
		users = append(users, u)
	}
	return bookings, users, rows.Err()
}

// HasConfirmed reports whether the user holds a confirmed booking on the
// trip. Feeds the derived participant rule.
func (r BookingRepo) HasConfirmed(tripID, userID int64) (bool, error) {
	var n int
	err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM bookings
		WHERE trip_id = ? AND user_id = ? AND status = ?`,
		tripID, userID, models.BookingConfirmed).Scan(&n)
	return n > 0, err
}

func collectBookings(rows *sql.Rows) ([]models.Booking, error) {
	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
