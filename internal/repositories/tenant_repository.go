package repositories

import (
	"context"
	"errors"

	"pg-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TenantRepository struct {
	DB *pgxpool.Pool
}

func NewTenantRepository(db *pgxpool.Pool) *TenantRepository {
	return &TenantRepository{DB: db}
}

// lockRoomForAssign locks the room row and verifies there is a free slot.
// Must be called inside the transaction that adjusts the counter, so that
// concurrent assignments against the same room serialize on the row lock.
func lockRoomForAssign(ctx context.Context, tx pgx.Tx, roomID int) error {
	var capacity, occupancy int
	err := tx.QueryRow(ctx,
		`SELECT capacity, current_occupancy FROM rooms WHERE id=$1 FOR UPDATE`,
		roomID,
	).Scan(&capacity, &occupancy)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if occupancy >= capacity {
		return ErrRoomFull
	}
	return nil
}

// CreateWithUser creates the user row and tenant profile and, when a room is
// assigned, increments that room's occupancy — all in one transaction. A
// capacity failure rolls back every write.
func (r *TenantRepository) CreateWithUser(ctx context.Context, user *models.User, profile *models.TenantProfile) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email=$1)`, user.Email,
	).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrEmailTaken
	}

	if err := tx.QueryRow(ctx,
		`INSERT INTO users(email, password_hash, role)
         VALUES($1, $2, $3)
         RETURNING id, created_at, updated_at`,
		user.Email, user.PasswordHash, user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return err
	}

	if profile.RoomID != nil {
		if err := lockRoomForAssign(ctx, tx, *profile.RoomID); err != nil {
			return err
		}
	}

	profile.UserID = user.ID
	if err := tx.QueryRow(ctx,
		`INSERT INTO tenant_profiles(user_id, name, phone, address, room_id, is_active, joining_date)
         VALUES($1, $2, $3, $4, $5, $6, COALESCE($7, CURRENT_DATE))
         RETURNING id, is_active, joining_date, created_at, updated_at`,
		profile.UserID, profile.Name, profile.Phone, profile.Address,
		profile.RoomID, true, profile.JoiningDate,
	).Scan(&profile.ID, &profile.IsActive, &profile.JoiningDate, &profile.CreatedAt, &profile.UpdatedAt); err != nil {
		return err
	}

	if profile.RoomID != nil {
		if _, err := tx.Exec(ctx,
			`UPDATE rooms SET current_occupancy = current_occupancy + 1, updated_at = NOW()
             WHERE id=$1`, *profile.RoomID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// UpdateWithOccupancy updates the profile and, when the room assignment
// changed, moves the occupancy counters of the old and new rooms in the same
// transaction. A full new room fails the whole update.
func (r *TenantRepository) UpdateWithOccupancy(ctx context.Context, id int, req *models.UpdateTenantRequest) (*models.TenantProfile, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var oldRoomID *int
	err = tx.QueryRow(ctx,
		`SELECT room_id FROM tenant_profiles WHERE id=$1 FOR UPDATE`, id,
	).Scan(&oldRoomID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	roomChanged := !intPtrEqual(oldRoomID, req.RoomID)

	if roomChanged && req.RoomID != nil {
		if err := lockRoomForAssign(ctx, tx, *req.RoomID); err != nil {
			return nil, err
		}
	}

	if _, err := tx.Exec(ctx,
		`UPDATE tenant_profiles
         SET name=$1, phone=$2, address=$3, room_id=$4, is_active=$5, updated_at=NOW()
         WHERE id=$6`,
		req.Name, req.Phone, req.Address, req.RoomID, req.IsActive, id); err != nil {
		return nil, err
	}

	if roomChanged {
		if oldRoomID != nil {
			if _, err := tx.Exec(ctx,
				`UPDATE rooms SET current_occupancy = GREATEST(current_occupancy - 1, 0), updated_at = NOW()
                 WHERE id=$1`, *oldRoomID); err != nil {
				return nil, err
			}
		}
		if req.RoomID != nil {
			if _, err := tx.Exec(ctx,
				`UPDATE rooms SET current_occupancy = current_occupancy + 1, updated_at = NOW()
                 WHERE id=$1`, *req.RoomID); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return r.Get(ctx, id)
}

// Delete removes the tenant's user row (the profile cascades) and releases
// the room slot in the same transaction.
func (r *TenantRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var userID int
	var roomID *int
	err = tx.QueryRow(ctx,
		`SELECT user_id, room_id FROM tenant_profiles WHERE id=$1 FOR UPDATE`, id,
	).Scan(&userID, &roomID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM users WHERE id=$1`, userID); err != nil {
		return err
	}

	if roomID != nil {
		if _, err := tx.Exec(ctx,
			`UPDATE rooms SET current_occupancy = GREATEST(current_occupancy - 1, 0), updated_at = NOW()
             WHERE id=$1`, *roomID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

const tenantSelect = `
	SELECT t.id, t.user_id, t.name, t.phone, t.address, t.room_id, t.is_active,
	       t.id_proof_url, t.id_proof_status, t.joining_date, t.created_at, t.updated_at,
	       u.email,
	       r.id, r.number, r.capacity, r.rent_amount, r.current_occupancy
	FROM tenant_profiles t
	JOIN users u ON t.user_id = u.id
	LEFT JOIN rooms r ON t.room_id = r.id
`

func scanTenant(row pgx.Row) (*models.TenantProfile, error) {
	var t models.TenantProfile
	var roomID, roomCapacity, roomOccupancy *int
	var roomNumber *string
	var roomRent *float64

	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Phone, &t.Address, &t.RoomID, &t.IsActive,
		&t.IDProofURL, &t.IDProofStatus, &t.JoiningDate, &t.CreatedAt, &t.UpdatedAt,
		&t.Email,
		&roomID, &roomNumber, &roomCapacity, &roomRent, &roomOccupancy)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if roomID != nil {
		t.Room = &models.Room{
			ID:               *roomID,
			Number:           *roomNumber,
			Capacity:         *roomCapacity,
			RentAmount:       *roomRent,
			CurrentOccupancy: *roomOccupancy,
		}
	}
	return &t, nil
}

func (r *TenantRepository) Get(ctx context.Context, id int) (*models.TenantProfile, error) {
	return scanTenant(r.DB.QueryRow(ctx, tenantSelect+` WHERE t.id=$1`, id))
}

// GetByUserID resolves the profile owned by a user. Tenant-scoped routes use
// this to resolve "self" instead of trusting a client-supplied tenant id.
func (r *TenantRepository) GetByUserID(ctx context.Context, userID int) (*models.TenantProfile, error) {
	return scanTenant(r.DB.QueryRow(ctx, tenantSelect+` WHERE t.user_id=$1`, userID))
}

func (r *TenantRepository) List(ctx context.Context) ([]*models.TenantProfile, error) {
	rows, err := r.DB.Query(ctx, tenantSelect+` ORDER BY t.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*models.TenantProfile
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

// SetIDProof stores the uploaded document location and resets verification
func (r *TenantRepository) SetIDProof(ctx context.Context, id int, url string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE tenant_profiles SET id_proof_url=$1, id_proof_status=$2, updated_at=NOW()
         WHERE id=$3`, url, models.IDProofPending, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TenantRepository) VerifyIDProof(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE tenant_profiles SET id_proof_status=$1, updated_at=NOW()
         WHERE id=$2`, models.IDProofVerified, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
