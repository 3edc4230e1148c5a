package repositories

import (
	"context"
	"errors"

	"pg-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

// Create inserts the payment and, for tenant rent payments, computes the
// total_rent and balance snapshots inside the same transaction: total_rent
// comes from the earliest existing payment for the tenant+month (so mid-month
// rent changes don't shift the target), falling back to the live room rent.
func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if p.TenantID != nil && p.Type == models.PaymentTypeRent {
		totalRent, err := monthTotalRent(ctx, tx, *p.TenantID, p.MonthFor)
		if err != nil {
			return err
		}

		var paid float64
		if err := tx.QueryRow(ctx,
			`SELECT COALESCE(SUM(amount), 0) FROM payments
             WHERE tenant_id=$1 AND month_for=$2 AND type=$3 AND status IN ($4, $5)`,
			*p.TenantID, p.MonthFor, models.PaymentTypeRent,
			models.PaymentPending, models.PaymentVerified,
		).Scan(&paid); err != nil {
			return err
		}

		p.TotalRent = totalRent
		p.Balance = totalRent - (paid + p.Amount)
		if p.Balance < 0 {
			p.Balance = 0
		}
	}

	if err := tx.QueryRow(ctx,
		`INSERT INTO payments(tenant_id, amount, month_for, type, status, proof_url, total_rent, balance)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING id, date, created_at`,
		p.TenantID, p.Amount, p.MonthFor, p.Type, p.Status, p.ProofURL,
		p.TotalRent, p.Balance,
	).Scan(&p.ID, &p.Date, &p.CreatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// monthTotalRent resolves the rent owed for a tenant+month: the earliest
// recorded payment's snapshot wins, otherwise the live room rent (0 when the
// tenant has no room).
func monthTotalRent(ctx context.Context, tx pgx.Tx, tenantID int, monthFor string) (float64, error) {
	var snapshot float64
	err := tx.QueryRow(ctx,
		`SELECT total_rent FROM payments
         WHERE tenant_id=$1 AND month_for=$2 AND type=$3
         ORDER BY created_at ASC, id ASC LIMIT 1`,
		tenantID, monthFor, models.PaymentTypeRent,
	).Scan(&snapshot)
	if err == nil {
		return snapshot, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	var rent *float64
	err = tx.QueryRow(ctx,
		`SELECT r.rent_amount FROM tenant_profiles t
         LEFT JOIN rooms r ON t.room_id = r.id
         WHERE t.id=$1`, tenantID,
	).Scan(&rent)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	if rent == nil {
		return 0, nil
	}
	return *rent, nil
}

const paymentSelect = `
	SELECT p.id, p.tenant_id, p.amount, p.month_for, p.type, p.status, p.proof_url,
	       p.total_rent, p.balance, p.date, p.created_at,
	       COALESCE(t.name, ''), COALESCE(r.number, '')
	FROM payments p
	LEFT JOIN tenant_profiles t ON p.tenant_id = t.id
	LEFT JOIN rooms r ON t.room_id = r.id
`

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	err := row.Scan(&p.ID, &p.TenantID, &p.Amount, &p.MonthFor, &p.Type, &p.Status,
		&p.ProofURL, &p.TotalRent, &p.Balance, &p.Date, &p.CreatedAt,
		&p.TenantName, &p.RoomNumber)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) Get(ctx context.Context, id int) (*models.Payment, error) {
	return scanPayment(r.DB.QueryRow(ctx, paymentSelect+` WHERE p.id=$1`, id))
}

func (r *PaymentRepository) List(ctx context.Context) ([]*models.Payment, error) {
	return r.queryPayments(ctx, paymentSelect+` ORDER BY p.date DESC, p.id DESC`)
}

func (r *PaymentRepository) ListByTenant(ctx context.Context, tenantID int) ([]*models.Payment, error) {
	return r.queryPayments(ctx,
		paymentSelect+` WHERE p.tenant_id=$1 ORDER BY p.date DESC, p.id DESC`, tenantID)
}

// MonthPayments returns a tenant's rent payments for one month label, oldest
// first. Feeds the live balance computation.
func (r *PaymentRepository) MonthPayments(ctx context.Context, tenantID int, monthFor string) ([]*models.Payment, error) {
	return r.queryPayments(ctx,
		paymentSelect+` WHERE p.tenant_id=$1 AND p.month_for=$2 AND p.type=$3
         ORDER BY p.created_at ASC, p.id ASC`,
		tenantID, monthFor, models.PaymentTypeRent)
}

// RentPayments returns all of a tenant's rent payments, oldest first. Feeds
// the per-month summary grouping.
func (r *PaymentRepository) RentPayments(ctx context.Context, tenantID int) ([]*models.Payment, error) {
	return r.queryPayments(ctx,
		paymentSelect+` WHERE p.tenant_id=$1 AND p.type=$2
         ORDER BY p.created_at ASC, p.id ASC`,
		tenantID, models.PaymentTypeRent)
}

func (r *PaymentRepository) queryPayments(ctx context.Context, sql string, args ...any) ([]*models.Payment, error) {
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// SetProof attaches an uploaded proof file to the payment
func (r *PaymentRepository) SetProof(ctx context.Context, id int, url string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE payments SET proof_url=$1 WHERE id=$2`, url, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus moves a PENDING payment to VERIFIED or REJECTED. Both targets
// are terminal; re-verifying a finalized payment fails.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id int, status string) (*models.Payment, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE payments SET status=$1 WHERE id=$2 AND status=$3`,
		status, id, models.PaymentPending)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.DB.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM payments WHERE id=$1)`, id,
		).Scan(&exists); err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrNotFound
		}
		return nil, ErrPaymentFinalized
	}
	return r.Get(ctx, id)
}
