package repositories

import (
	"context"
	"time"

	"parkapp/internal/common"
	"parkapp/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type VehicleEntryRepository interface {
	Create(ctx context.Context, entry *models.NewVehicleEntry) (*models.VehicleEntry, error)
	MarkExited(ctx context.Context, numberPlate string) (*models.VehicleEntry, error)
	List(ctx context.Context, includeExited bool) ([]*models.VehicleEntry, error)
	Count(ctx context.Context, filter models.CountFilter) (int64, error)
}

type vehicleEntryRepo struct {
	db Database
}

func NewVehicleEntryRepo(db Database) VehicleEntryRepository {
	return &vehicleEntryRepo{db: db}
}

const vehicleEntryColumns = `id, number_plate, driver_name, passenger_count, reason, front_image, back_image, timestamp, exited, exit_time`

func (r *vehicleEntryRepo) Create(ctx context.Context, in *models.NewVehicleEntry) (*models.VehicleEntry, error) {
	query := `
		INSERT INTO vehicle_entries
			(number_plate, driver_name, passenger_count, reason, front_image, back_image, timestamp, exited, exit_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false, NULL)
		RETURNING ` + vehicleEntryColumns
	ts := time.Now().UTC()
	if in.Timestamp != nil {
		ts = *in.Timestamp
	}
	row := r.db.QueryRow(ctx, query, in.NumberPlate, in.DriverName, in.PassengerCount, in.Reason, in.FrontImage, in.BackImage, ts)
	entry, err := scanVehicleEntry(row)
	if err != nil {
		return nil, translate("create vehicle entry", err)
	}
	return entry, nil
}

// MarkExited flips exactly one open entry for the plate, the oldest one. When
// no open entry exists nothing is written and common.ErrNotFound is returned.
func (r *vehicleEntryRepo) MarkExited(ctx context.Context, numberPlate string) (*models.VehicleEntry, error) {
	query := `
		UPDATE vehicle_entries
		SET exited = true, exit_time = NOW()
		WHERE id = (
			SELECT id FROM vehicle_entries
			WHERE number_plate = $1 AND exited = false
			ORDER BY id ASC
			LIMIT 1
			FOR UPDATE
		)
		RETURNING ` + vehicleEntryColumns
	entry, err := scanVehicleEntry(r.db.QueryRow(ctx, query, numberPlate))
	if err != nil {
		return nil, translate("mark vehicle exited", err)
	}
	return entry, nil
}

func (r *vehicleEntryRepo) List(ctx context.Context, includeExited bool) ([]*models.VehicleEntry, error) {
	query := `SELECT ` + vehicleEntryColumns + ` FROM vehicle_entries WHERE exited = false ORDER BY id DESC`
	if includeExited {
		query = `SELECT ` + vehicleEntryColumns + ` FROM vehicle_entries ORDER BY id DESC`
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, common.StorageError("list vehicle entries", err)
	}
	defer rows.Close()

	entries := make([]*models.VehicleEntry, 0)
	for rows.Next() {
		entry, err := scanVehicleEntry(rows)
		if err != nil {
			return nil, common.StorageError("scan vehicle entry", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, common.StorageError("list vehicle entries", err)
	}
	return entries, nil
}

func (r *vehicleEntryRepo) Count(ctx context.Context, filter models.CountFilter) (int64, error) {
	var (
		row   pgx.Row
		count int64
	)
	switch {
	case filter.Start != nil && filter.End != nil:
		row = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM vehicle_entries WHERE timestamp BETWEEN $1 AND $2`, *filter.Start, *filter.End)
	case filter.Start != nil:
		row = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM vehicle_entries WHERE DATE(timestamp) = $1::date`, common.FormatDate(*filter.Start))
	default:
		row = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM vehicle_entries`)
	}
	if err := row.Scan(&count); err != nil {
		return 0, common.StorageError("count vehicle entries", err)
	}
	return count, nil
}

func scanVehicleEntry(row pgx.Row) (*models.VehicleEntry, error) {
	entry := &models.VehicleEntry{}
	var exitTime pgtype.Timestamptz
	err := row.Scan(
		&entry.ID, &entry.NumberPlate, &entry.DriverName, &entry.PassengerCount, &entry.Reason,
		&entry.FrontImage, &entry.BackImage, &entry.Timestamp, &entry.Exited, &exitTime,
	)
	if err != nil {
		return nil, err
	}
	if exitTime.Valid {
		t := exitTime.Time
		entry.ExitTime = &t
	}
	return entry, nil
}
