package repositories

import (
	"context"
	"errors"

	"pg-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomRepository struct {
	DB *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{DB: db}
}

func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	var exists bool
	if err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM rooms WHERE number=$1)`, room.Number,
	).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrRoomNumberTaken
	}

	return r.DB.QueryRow(ctx,
		`INSERT INTO rooms(number, capacity, rent_amount, current_occupancy)
         VALUES($1, $2, $3, 0)
         RETURNING id, current_occupancy, created_at, updated_at`,
		room.Number, room.Capacity, room.RentAmount,
	).Scan(&room.ID, &room.CurrentOccupancy, &room.CreatedAt, &room.UpdatedAt)
}

func (r *RoomRepository) Get(ctx context.Context, id int) (*models.Room, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, number, capacity, rent_amount, current_occupancy, created_at, updated_at
         FROM rooms WHERE id=$1`, id)

	var room models.Room
	err := row.Scan(&room.ID, &room.Number, &room.Capacity, &room.RentAmount,
		&room.CurrentOccupancy, &room.CreatedAt, &room.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	tenants, err := r.roomTenants(ctx, id)
	if err != nil {
		return nil, err
	}
	room.Tenants = tenants
	return &room, nil
}

func (r *RoomRepository) roomTenants(ctx context.Context, roomID int) ([]*models.TenantProfile, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, user_id, name, phone, is_active
         FROM tenant_profiles WHERE room_id=$1 ORDER BY name`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*models.TenantProfile
	for rows.Next() {
		var t models.TenantProfile
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Phone, &t.IsActive); err != nil {
			return nil, err
		}
		tenants = append(tenants, &t)
	}
	return tenants, rows.Err()
}

func (r *RoomRepository) List(ctx context.Context) ([]*models.Room, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, number, capacity, rent_amount, current_occupancy, created_at, updated_at
         FROM rooms ORDER BY number ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(&room.ID, &room.Number, &room.Capacity, &room.RentAmount,
			&room.CurrentOccupancy, &room.CreatedAt, &room.UpdatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, &room)
	}
	return rooms, rows.Err()
}

// Update changes number, capacity and rent. Shrinking capacity below the
// current occupancy is rejected; occupancy itself is never written here.
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var occupancy int
	err = tx.QueryRow(ctx,
		`SELECT current_occupancy FROM rooms WHERE id=$1 FOR UPDATE`, room.ID,
	).Scan(&occupancy)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if room.Capacity < occupancy {
		return ErrCapacityBelowOccupancy
	}

	var taken bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM rooms WHERE number=$1 AND id<>$2)`,
		room.Number, room.ID,
	).Scan(&taken); err != nil {
		return err
	}
	if taken {
		return ErrRoomNumberTaken
	}

	if _, err := tx.Exec(ctx,
		`UPDATE rooms SET number=$1, capacity=$2, rent_amount=$3, updated_at=NOW()
         WHERE id=$4`,
		room.Number, room.Capacity, room.RentAmount, room.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *RoomRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var occupancy int
	err = tx.QueryRow(ctx,
		`SELECT current_occupancy FROM rooms WHERE id=$1 FOR UPDATE`, id,
	).Scan(&occupancy)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	// The counter can be stale; trust the live count for the delete guard
	var live int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM tenant_profiles WHERE room_id=$1`, id,
	).Scan(&live); err != nil {
		return err
	}
	if occupancy > 0 || live > 0 {
		return ErrRoomOccupied
	}

	if _, err := tx.Exec(ctx, `DELETE FROM rooms WHERE id=$1`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Reconcile overwrites every room's occupancy counter with the live count of
// assigned tenants. Idempotent; this is the recovery path for counter drift.
func (r *RoomRepository) Reconcile(ctx context.Context) ([]*models.OccupancyFix, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		SELECT r.id, r.number, r.current_occupancy, COUNT(t.id)
		FROM rooms r
		LEFT JOIN tenant_profiles t ON t.room_id = r.id
		GROUP BY r.id, r.number, r.current_occupancy
		HAVING r.current_occupancy <> COUNT(t.id)
	`)
	if err != nil {
		return nil, err
	}

	var fixes []*models.OccupancyFix
	for rows.Next() {
		var fix models.OccupancyFix
		if err := rows.Scan(&fix.RoomID, &fix.Number, &fix.StoredWas, &fix.LiveCount); err != nil {
			rows.Close()
			return nil, err
		}
		fixes = append(fixes, &fix)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(fixes) > 0 {
		if _, err := tx.Exec(ctx, `
			UPDATE rooms r
			SET current_occupancy = live.cnt, updated_at = NOW()
			FROM (
				SELECT r2.id, COUNT(t.id) AS cnt
				FROM rooms r2
				LEFT JOIN tenant_profiles t ON t.room_id = r2.id
				GROUP BY r2.id
			) live
			WHERE live.id = r.id AND r.current_occupancy <> live.cnt
		`); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return fixes, nil
}
