// Package qrimage encodes URLs into QR code PNG images and provides
// helpers for hex color parsing and image file naming.
package qrimage

import (
	"errors"
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

// ErrInvalidHexColor is returned when a color string is not a valid
// #RGB or #RRGGBB hex color.
var ErrInvalidHexColor = errors.New("invalid hex color")

// DefaultSize is the side length in pixels of generated QR code images.
const DefaultSize = 512

var filenameRegexp = regexp.MustCompile(`^[A-Za-z0-9_-]+\.png$`)

// ParseHexColor parses a #RGB or #RRGGBB hex color string into an opaque RGBA color.
func ParseHexColor(s string) (color.RGBA, error) {
	const op = "qrimage.ParseHexColor"

	c := color.RGBA{A: 0xFF}

	if !strings.HasPrefix(s, "#") {
		return c, fmt.Errorf("%s: %q: %w", op, s, ErrInvalidHexColor)
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return c, fmt.Errorf("%s: %q: %w", op, s, ErrInvalidHexColor)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return c, fmt.Errorf("%s: %q: %w", op, s, ErrInvalidHexColor)
	}

	c.R = uint8(v >> 16)
	c.G = uint8(v >> 8)
	c.B = uint8(v)

	return c, nil
}

// EncodePNG encodes data into a QR code PNG image with the given
// fill and background hex colors.
func EncodePNG(data, fillColor, backColor string) ([]byte, error) {
	const op = "qrimage.EncodePNG"

	fill, err := ParseHexColor(fillColor)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse fill color: %w", op, err)
	}

	back, err := ParseHexColor(backColor)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse back color: %w", op, err)
	}

	qr, err := qrcode.New(data, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to encode data: %w", op, err)
	}

	qr.ForegroundColor = fill
	qr.BackgroundColor = back

	png, err := qr.PNG(DefaultSize)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to render png: %w", op, err)
	}

	return png, nil
}

// NewFilename returns a unique image filename. The timestamp keeps names
// sortable, the uuid fragment rules out collisions within a second.
func NewFilename() string {
	return fmt.Sprintf("qr_%s_%s.png",
		time.Now().UTC().Format("20060102150405"),
		uuid.NewString()[:8])
}

// ValidFilename reports whether name is a safe image filename:
// letters, digits, hyphens and underscores with a .png extension.
func ValidFilename(name string) bool {
	return filenameRegexp.MatchString(name)
}
