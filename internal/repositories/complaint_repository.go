package repositories

import (
	"context"
	"errors"

	"pg-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ComplaintRepository struct {
	DB *pgxpool.Pool
}

func NewComplaintRepository(db *pgxpool.Pool) *ComplaintRepository {
	return &ComplaintRepository{DB: db}
}

func (r *ComplaintRepository) Create(ctx context.Context, c *models.Complaint) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO complaints(tenant_id, title, description, category, photo_url)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, status, created_at, updated_at`,
		c.TenantID, c.Title, c.Description, c.Category, c.PhotoURL,
	).Scan(&c.ID, &c.Status, &c.CreatedAt, &c.UpdatedAt)
}

const complaintSelect = `
	SELECT c.id, c.tenant_id, c.title, c.description, c.category, c.photo_url,
	       c.status, c.created_at, c.updated_at,
	       t.name, COALESCE(r.number, '')
	FROM complaints c
	JOIN tenant_profiles t ON c.tenant_id = t.id
	LEFT JOIN rooms r ON t.room_id = r.id
`

func scanComplaint(row pgx.Row) (*models.Complaint, error) {
	var c models.Complaint
	err := row.Scan(&c.ID, &c.TenantID, &c.Title, &c.Description, &c.Category,
		&c.PhotoURL, &c.Status, &c.CreatedAt, &c.UpdatedAt,
		&c.TenantName, &c.RoomNumber)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Get returns the complaint with its comment thread attached
func (r *ComplaintRepository) Get(ctx context.Context, id int) (*models.Complaint, error) {
	c, err := scanComplaint(r.DB.QueryRow(ctx, complaintSelect+` WHERE c.id=$1`, id))
	if err != nil {
		return nil, err
	}
	comments, err := r.Comments(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Comments = comments
	return c, nil
}

func (r *ComplaintRepository) List(ctx context.Context) ([]*models.Complaint, error) {
	return r.queryComplaints(ctx, complaintSelect+` ORDER BY c.created_at DESC`)
}

func (r *ComplaintRepository) ListByTenant(ctx context.Context, tenantID int) ([]*models.Complaint, error) {
	return r.queryComplaints(ctx,
		complaintSelect+` WHERE c.tenant_id=$1 ORDER BY c.created_at DESC`, tenantID)
}

func (r *ComplaintRepository) queryComplaints(ctx context.Context, sql string, args ...any) ([]*models.Complaint, error) {
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var complaints []*models.Complaint
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		complaints = append(complaints, c)
	}
	return complaints, rows.Err()
}

func (r *ComplaintRepository) UpdateStatus(ctx context.Context, id int, status string) (*models.Complaint, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE complaints SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

// AddComment appends to the complaint's thread. Comments are never edited or
// deleted.
func (r *ComplaintRepository) AddComment(ctx context.Context, c *models.ComplaintComment) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO complaint_comments(complaint_id, user_id, text)
         VALUES($1, $2, $3)
         RETURNING id, created_at`,
		c.ComplaintID, c.UserID, c.Text,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return err
	}

	return r.DB.QueryRow(ctx,
		`SELECT email, role FROM users WHERE id=$1`, c.UserID,
	).Scan(&c.AuthorEmail, &c.AuthorRole)
}

// Comments returns the thread oldest-first
func (r *ComplaintRepository) Comments(ctx context.Context, complaintID int) ([]*models.ComplaintComment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT cc.id, cc.complaint_id, cc.user_id, cc.text, cc.created_at,
                u.email, u.role
         FROM complaint_comments cc
         JOIN users u ON cc.user_id = u.id
         WHERE cc.complaint_id=$1
         ORDER BY cc.created_at ASC, cc.id ASC`, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.ComplaintComment
	for rows.Next() {
		var c models.ComplaintComment
		if err := rows.Scan(&c.ID, &c.ComplaintID, &c.UserID, &c.Text, &c.CreatedAt,
			&c.AuthorEmail, &c.AuthorRole); err != nil {
			return nil, err
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}
