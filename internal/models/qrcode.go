package models

import "time"

// QRCode represents a stored QR code and its associated metadata.
type QRCode struct {
	// ID is the unique identifier for the QR code record.
	ID int64
	// URL is the target URL the QR code points to.
	URL string
	// Filename is the name of the generated PNG file in the image store.
	Filename string
	// FillColor is the hex color of the QR code pattern.
	FillColor string
	// BackColor is the hex background color of the QR code image.
	BackColor string
	// Description is an optional human-readable note for the record.
	Description string
	// IsActive reports whether the QR code is currently active.
	// Inactive dynamic codes are not resolved by the redirect path.
	IsActive bool
	// IsDynamic reports whether the QR code encodes a redirect URL
	// carrying a short code instead of the target URL itself.
	IsDynamic bool
	// ShortCode is the unique redirect token for dynamic QR codes.
	// It is empty for static codes and immutable after creation.
	ShortCode string
	// AccessCount tracks the number of times the redirect path resolved this record.
	AccessCount int64
	// CreatedAt is the timestamp indicating when the record was created.
	CreatedAt time.Time
	// UpdatedAt is the timestamp indicating when the record was last updated.
	UpdatedAt time.Time
}
