package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/qr-manager/internal/database"
	"github.com/vadimbarashkov/qr-manager/internal/models"
)

type qrCodeRecord struct {
	ID          int64          `db:"id"`
	URL         string         `db:"url"`
	Filename    string         `db:"filename"`
	FillColor   string         `db:"fill_color"`
	BackColor   string         `db:"back_color"`
	Description string         `db:"description"`
	IsActive    bool           `db:"is_active"`
	IsDynamic   bool           `db:"is_dynamic"`
	ShortCode   sql.NullString `db:"short_code"`
	AccessCount int64          `db:"access_count"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r *qrCodeRecord) ToQRCode() *models.QRCode {
	return &models.QRCode{
		ID:          r.ID,
		URL:         r.URL,
		Filename:    r.Filename,
		FillColor:   r.FillColor,
		BackColor:   r.BackColor,
		Description: r.Description,
		IsActive:    r.IsActive,
		IsDynamic:   r.IsDynamic,
		ShortCode:   r.ShortCode.String,
		AccessCount: r.AccessCount,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type QRCodeRepository struct {
	db *sqlx.DB
}

func NewQRCodeRepository(db *sqlx.DB) *QRCodeRepository {
	return &QRCodeRepository{
		db: db,
	}
}

func (r *QRCodeRepository) Create(ctx context.Context, params database.CreateParams) (*models.QRCode, error) {
	const op = "database.postgres.QRCodeRepository.Create"

	rec := new(qrCodeRecord)
	query := `INSERT INTO qr_codes(url, filename, fill_color, back_color, description, is_dynamic, short_code)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
		RETURNING *`

	err := r.db.GetContext(ctx, rec, query,
		params.URL, params.Filename, params.FillColor, params.BackColor,
		params.Description, params.IsDynamic, params.ShortCode)
	if err != nil {
		switch uniqueViolationConstraint(err) {
		case shortCodeUniqueConstraint:
			return nil, fmt.Errorf("%s: %w", op, database.ErrShortCodeExists)
		case filenameUniqueConstraint:
			return nil, fmt.Errorf("%s: %w", op, database.ErrFilenameExists)
		}

		return nil, fmt.Errorf("%s: failed to create qr code record: %w", op, err)
	}

	return rec.ToQRCode(), nil
}

func (r *QRCodeRepository) GetByID(ctx context.Context, id int64) (*models.QRCode, error) {
	const op = "database.postgres.QRCodeRepository.GetByID"

	rec := new(qrCodeRecord)
	query := `SELECT * FROM qr_codes WHERE id = $1`

	err := r.db.GetContext(ctx, rec, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, database.ErrQRCodeNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get qr code record: %w", op, err)
	}

	return rec.ToQRCode(), nil
}

func (r *QRCodeRepository) List(ctx context.Context) ([]*models.QRCode, error) {
	const op = "database.postgres.QRCodeRepository.List"

	var recs []qrCodeRecord
	query := `SELECT * FROM qr_codes ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &recs, query)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list qr code records: %w", op, err)
	}

	qrCodes := make([]*models.QRCode, 0, len(recs))
	for i := range recs {
		qrCodes = append(qrCodes, recs[i].ToQRCode())
	}

	return qrCodes, nil
}

// GetByShortCode resolves an active dynamic QR code and atomically increments
// its access counter. Inactive records are treated as not found.
func (r *QRCodeRepository) GetByShortCode(ctx context.Context, shortCode string) (*models.QRCode, error) {
	const op = "database.postgres.QRCodeRepository.GetByShortCode"

	rec := new(qrCodeRecord)
	query := `UPDATE qr_codes
		SET access_count = access_count + 1
		WHERE short_code = $1 AND is_active
		RETURNING *`

	err := r.db.GetContext(ctx, rec, query, shortCode)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, database.ErrQRCodeNotFound)
		}

		return nil, fmt.Errorf("%s: failed to resolve short code: %w", op, err)
	}

	return rec.ToQRCode(), nil
}

func (r *QRCodeRepository) Update(ctx context.Context, id int64, params database.UpdateParams) (*models.QRCode, error) {
	const op = "database.postgres.QRCodeRepository.Update"

	rec := new(qrCodeRecord)
	query := `UPDATE qr_codes
		SET url = $1, filename = $2, fill_color = $3, back_color = $4,
			description = $5, is_active = $6, updated_at = now()
		WHERE id = $7
		RETURNING *`

	err := r.db.GetContext(ctx, rec, query,
		params.URL, params.Filename, params.FillColor, params.BackColor,
		params.Description, params.IsActive, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, database.ErrQRCodeNotFound)
		}

		if uniqueViolationConstraint(err) == filenameUniqueConstraint {
			return nil, fmt.Errorf("%s: %w", op, database.ErrFilenameExists)
		}

		return nil, fmt.Errorf("%s: failed to update qr code record: %w", op, err)
	}

	return rec.ToQRCode(), nil
}

func (r *QRCodeRepository) Delete(ctx context.Context, id int64) error {
	const op = "database.postgres.QRCodeRepository.Delete"

	query := `DELETE FROM qr_codes WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: failed to delete qr code record: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, database.ErrQRCodeNotFound)
	}

	return nil
}
