package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/vadimbarashkov/qr-manager/internal/database"
	"github.com/vadimbarashkov/qr-manager/internal/models"
	"github.com/vadimbarashkov/qr-manager/internal/qrimage"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

var (
	// ErrMaxRetriesExceeded is returned when the maximum number of retries for generating a short code is exceeded.
	ErrMaxRetriesExceeded = errors.New("maximum retries exceeded for generating short code")
	// ErrInvalidURL is returned when a target URL is not an absolute http(s) URL.
	ErrInvalidURL = errors.New("invalid url")
	// ErrInvalidFilename is returned when a requested image filename fails validation.
	ErrInvalidFilename = errors.New("invalid filename")
)

// QRCodeRepository defines the interface for working with QR code records at the business logic layer.
type QRCodeRepository interface {
	// Create inserts a new QR code record.
	// Returns the created model or an error if the operation fails.
	Create(ctx context.Context, params database.CreateParams) (*models.QRCode, error)

	// GetByID retrieves a QR code by its identifier.
	GetByID(ctx context.Context, id int64) (*models.QRCode, error)

	// List retrieves all QR codes, newest first.
	List(ctx context.Context) ([]*models.QRCode, error)

	// GetByShortCode resolves an active dynamic QR code by its short code
	// and increments its access counter.
	GetByShortCode(ctx context.Context, shortCode string) (*models.QRCode, error)

	// Update modifies a QR code record.
	Update(ctx context.Context, id int64, params database.UpdateParams) (*models.QRCode, error)

	// Delete removes a QR code record by its identifier.
	Delete(ctx context.Context, id int64) error
}

// FileStore defines the interface for storing generated QR code images.
type FileStore interface {
	Save(name string, data []byte) error
	Remove(name string) error
}

// Config holds the tunables of the QR code service.
type Config struct {
	// BaseURL is the public base URL used to build redirect links
	// embedded in dynamic QR code images.
	BaseURL string
	// ShortCodeLength is the length of generated short codes.
	ShortCodeLength int
	// DefaultFillColor is the hex fill color used when a request omits one.
	DefaultFillColor string
	// DefaultBackColor is the hex background color used when a request omits one.
	DefaultBackColor string
}

// QRCodeService provides methods to manage QR code records and their image files.
// It uses a QRCodeRepository for persistence and a FileStore for the generated images.
type QRCodeService struct {
	repo            QRCodeRepository
	store           FileStore
	baseURL         string
	shortCodeLength int
	defaultFill     string
	defaultBack     string
}

// NewQRCodeService creates a new instance of QRCodeService with the provided repository, file store and config.
func NewQRCodeService(repo QRCodeRepository, store FileStore, cfg Config) *QRCodeService {
	return &QRCodeService{
		repo:            repo,
		store:           store,
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		shortCodeLength: cfg.ShortCodeLength,
		defaultFill:     cfg.DefaultFillColor,
		defaultBack:     cfg.DefaultBackColor,
	}
}

// CreateQRCodeParams carries the user-supplied fields for creating a QR code.
type CreateQRCodeParams struct {
	URL         string
	IsDynamic   bool
	FillColor   string
	BackColor   string
	Description string
}

// CreateQRCode creates a QR code record and writes its PNG image to the file store.
// Static codes encode the target URL directly; dynamic codes get a unique short code
// and encode the public redirect URL instead. Short code generation is retried
// a bounded number of times on collision.
func (s *QRCodeService) CreateQRCode(ctx context.Context, params CreateQRCodeParams) (*models.QRCode, error) {
	const op = "service.QRCodeService.CreateQRCode"
	const maxRetries = 5

	if err := validateTargetURL(params.URL); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	createParams := database.CreateParams{
		URL:         params.URL,
		Filename:    qrimage.NewFilename(),
		FillColor:   s.fillColor(params.FillColor),
		BackColor:   s.backColor(params.BackColor),
		Description: params.Description,
		IsDynamic:   params.IsDynamic,
	}

	if _, err := qrimage.ParseHexColor(createParams.FillColor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := qrimage.ParseHexColor(createParams.BackColor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !params.IsDynamic {
		qr, err := s.repo.Create(ctx, createParams)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to create qr code: %w", op, err)
		}

		if err := s.writeImage(qr); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		return qr, nil
	}

	for i := 0; i < maxRetries; i++ {
		shortCode, err := gonanoid.New(s.shortCodeLength)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to generate short code: %w", op, err)
		}

		createParams.ShortCode = shortCode

		qr, err := s.repo.Create(ctx, createParams)
		if err != nil {
			if errors.Is(err, database.ErrShortCodeExists) {
				continue
			}

			return nil, fmt.Errorf("%s: failed to create qr code: %w", op, err)
		}

		if err := s.writeImage(qr); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		return qr, nil
	}

	return nil, fmt.Errorf("%s: %w", op, ErrMaxRetriesExceeded)
}

// GetQRCode retrieves a QR code record by its identifier.
func (s *QRCodeService) GetQRCode(ctx context.Context, id int64) (*models.QRCode, error) {
	const op = "service.QRCodeService.GetQRCode"

	qr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get qr code: %w", op, err)
	}

	return qr, nil
}

// ListQRCodes retrieves all QR code records, newest first.
func (s *QRCodeService) ListQRCodes(ctx context.Context) ([]*models.QRCode, error) {
	const op = "service.QRCodeService.ListQRCodes"

	qrCodes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list qr codes: %w", op, err)
	}

	return qrCodes, nil
}

// UpdateQRCodeParams carries the user-supplied fields for updating a QR code.
// Filename, when non-empty, renames the backing image file.
type UpdateQRCodeParams struct {
	URL         string
	FillColor   string
	BackColor   string
	Description string
	IsActive    bool
	Filename    string
}

// UpdateQRCode updates a QR code record and regenerates its image.
// Dynamic codes keep encoding their redirect URL, so a target URL change
// takes effect without reprinting the code.
func (s *QRCodeService) UpdateQRCode(ctx context.Context, id int64, params UpdateQRCodeParams) (*models.QRCode, error) {
	const op = "service.QRCodeService.UpdateQRCode"

	if err := validateTargetURL(params.URL); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if params.Filename != "" && !qrimage.ValidFilename(params.Filename) {
		return nil, fmt.Errorf("%s: %q: %w", op, params.Filename, ErrInvalidFilename)
	}

	cur, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get qr code: %w", op, err)
	}

	filename := cur.Filename
	if params.Filename != "" {
		filename = params.Filename
	}

	updateParams := database.UpdateParams{
		URL:         params.URL,
		Filename:    filename,
		FillColor:   s.fillColor(params.FillColor),
		BackColor:   s.backColor(params.BackColor),
		Description: params.Description,
		IsActive:    params.IsActive,
	}

	if _, err := qrimage.ParseHexColor(updateParams.FillColor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := qrimage.ParseHexColor(updateParams.BackColor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	qr, err := s.repo.Update(ctx, id, updateParams)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to update qr code: %w", op, err)
	}

	if qr.Filename != cur.Filename {
		if err := s.store.Remove(cur.Filename); err != nil {
			return nil, fmt.Errorf("%s: failed to remove old image: %w", op, err)
		}
	}

	if err := s.writeImage(qr); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return qr, nil
}

// DeleteQRCode removes a QR code record and its image file.
// An image file that is already absent is not an error.
func (s *QRCodeService) DeleteQRCode(ctx context.Context, id int64) error {
	const op = "service.QRCodeService.DeleteQRCode"

	qr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: failed to get qr code: %w", op, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: failed to delete qr code: %w", op, err)
	}

	if err := s.store.Remove(qr.Filename); err != nil {
		return fmt.Errorf("%s: failed to remove image: %w", op, err)
	}

	return nil
}

// ResolveShortCode resolves an active dynamic QR code by its short code,
// incrementing its access counter.
func (s *QRCodeService) ResolveShortCode(ctx context.Context, shortCode string) (*models.QRCode, error) {
	const op = "service.QRCodeService.ResolveShortCode"

	qr, err := s.repo.GetByShortCode(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve short code: %w", op, err)
	}

	return qr, nil
}

// RedirectURL returns the public redirect URL for a short code.
func (s *QRCodeService) RedirectURL(shortCode string) string {
	return s.baseURL + "/r/" + shortCode
}

// writeImage encodes the QR code image and saves it to the file store.
// Dynamic codes embed the redirect URL, static codes embed the target URL.
func (s *QRCodeService) writeImage(qr *models.QRCode) error {
	embedURL := qr.URL
	if qr.IsDynamic {
		embedURL = s.RedirectURL(qr.ShortCode)
	}

	data, err := qrimage.EncodePNG(embedURL, qr.FillColor, qr.BackColor)
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}

	if err := s.store.Save(qr.Filename, data); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}

	return nil
}

func (s *QRCodeService) fillColor(c string) string {
	if c == "" {
		return s.defaultFill
	}
	return c
}

func (s *QRCodeService) backColor(c string) string {
	if c == "" {
		return s.defaultBack
	}
	return c
}

func validateTargetURL(rawURL string) error {
	u, err := url.ParseRequestURI(rawURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%q: %w", rawURL, ErrInvalidURL)
	}
	return nil
}
