package database

// CreateParams carries the column values for inserting a new QR code record.
type CreateParams struct {
	URL         string
	Filename    string
	FillColor   string
	BackColor   string
	Description string
	IsDynamic   bool
	ShortCode   string
}

// UpdateParams carries the mutable column values for an existing QR code record.
// The short code and dynamic flag are immutable after creation.
type UpdateParams struct {
	URL         string
	Filename    string
	FillColor   string
	BackColor   string
	Description string
	IsActive    bool
}
