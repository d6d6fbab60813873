package repositories

import (
	"database/sql"

	"jombo/internal/db"
	"jombo/internal/domain/models"
)

type TripRepo struct {
	DB *sql.DB
}

const tripColumns = `t.id, t.driver_id, t.departure_location, t.arrival_location,
	t.departure_time, t.available_seats, t.price,
	COALESCE(t.description, ''), COALESCE(t.region, ''),
	t.created_at, t.updated_at`

func scanTrip(row interface{ Scan(...any) error }) (models.Trip, error) {
	var t models.Trip
	err := row.Scan(
		&t.ID, &t.DriverID, &t.DepartureLocation, &t.ArrivalLocation,
		&t.DepartureTime, &t.AvailableSeats, &t.Price,
		&t.Description, &t.Region,
		&t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r TripRepo) GetByID(id int64) (models.Trip, error) {
	row := r.DB.QueryRow(`SELECT `+tripColumns+` FROM trips t WHERE t.id = ?`, id)
	return scanTrip(row)
}

// GetWithDriver loads the trip plus its driver's public fields.
func (r TripRepo) GetWithDriver(id int64) (models.Trip, error) {
	row := r.DB.QueryRow(`
		SELECT `+tripColumns+`, u.id, u.email, u.name
		FROM trips t
		JOIN users u ON u.id = t.driver_id
		WHERE t.id = ?`, id)

	var t models.Trip
	var driver models.User
	err := row.Scan(
		&t.ID, &t.DriverID, &t.DepartureLocation, &t.ArrivalLocation,
		&t.DepartureTime, &t.AvailableSeats, &t.Price,
		&t.Description, &t.Region,
		&t.CreatedAt, &t.UpdatedAt,
		&driver.ID, &driver.Email, &driver.Name,
	)
	if err != nil {
		return models.Trip{}, err
	}
	t.Driver = &driver
	return t, nil
}

func (r TripRepo) List() ([]models.Trip, error) {
	rows, err := r.DB.Query(`SELECT ` + tripColumns + ` FROM trips t ORDER BY t.departure_time ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTrips(rows)
}

func (r TripRepo) ListByDriver(driverID int64) ([]models.Trip, error) {
	rows, err := r.DB.Query(`SELECT `+tripColumns+` FROM trips t WHERE t.driver_id = ? ORDER BY t.departure_time ASC`, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTrips(rows)
}

// Search matches departure location case-insensitively as a prefix.
func (r TripRepo) Search(departure string) ([]models.Trip, error) {
	rows, err := r.DB.Query(`
		SELECT `+tripColumns+`
		FROM trips t
		WHERE LOWER(t.departure_location) LIKE LOWER(?)
		ORDER BY t.departure_time ASC`, departure+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTrips(rows)
}

func collectTrips(rows *sql.Rows) ([]models.Trip, error) {
	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripRepo) Create(t models.Trip) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO trips (driver_id, departure_location, arrival_location, departure_time, available_seats, price, description, region)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.DriverID, t.DepartureLocation, t.ArrivalLocation, t.DepartureTime,
		t.AvailableSeats, t.Price, db.NullIfEmpty(t.Description), db.NullIfEmpty(t.Region))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TripRepo) Update(t models.Trip) error {
	_, err := r.DB.Exec(`
		UPDATE trips
		SET departure_location = ?, arrival_location = ?, departure_time = ?, available_seats = ?, price = ?, description = ?, region = ?
		WHERE id = ?`,
		t.DepartureLocation, t.ArrivalLocation, t.DepartureTime,
		t.AvailableSeats, t.Price, db.NullIfEmpty(t.Description), db.NullIfEmpty(t.Region), t.ID)
	return err
}

// Delete cascades to bookings, the conversation and its messages via the
// schema's foreign keys.
func (r TripRepo) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM trips WHERE id = ?`, id)
	return err
}

// LockAvailableSeats reads the seat counter under a row lock. Concurrent
// confirms against the same trip serialize here, so the sufficiency check
// and the decrement observe a consistent count.
func (r TripRepo) LockAvailableSeats(tx *sql.Tx, tripID int64) (int, error) {
	var available int
	err := tx.QueryRow(`SELECT available_seats FROM trips WHERE id = ? FOR UPDATE`, tripID).Scan(&available)
	return available, err
}

// AdjustAvailableSeats applies a signed delta to the seat counter. Only the
// booking state machine calls this, always inside the transition's
// transaction, after LockAvailableSeats verified sufficiency.
func (r TripRepo) AdjustAvailableSeats(tx *sql.Tx, tripID int64, delta int) error {
	_, err := tx.Exec(`UPDATE trips SET available_seats = available_seats + ? WHERE id = ?`, delta, tripID)
	return err
}
