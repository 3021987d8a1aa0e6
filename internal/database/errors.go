package database

import "errors"

var (
	// ErrShortCodeExists is returned when an attempt is made to create
	// a dynamic QR code with a short code that already exists.
	ErrShortCodeExists = errors.New("short code exists")
	// ErrFilenameExists is returned when an attempt is made to store
	// a QR code record under a filename that is already taken.
	ErrFilenameExists = errors.New("filename exists")
	// ErrQRCodeNotFound is returned when an attempt is made to retrieve
	// a QR code that doesn't exist.
	ErrQRCodeNotFound = errors.New("qr code not found")
)
