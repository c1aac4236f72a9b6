package qr

import (
	"encoding/base64"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultColor = "#667eea"

	// pixels per module; the encoder adds a 4-module quiet zone
	moduleSize = 10
)

// Renderer draws QR codes as PNG images with high error correction.
type Renderer struct {
	foreground color.Color
	background color.Color
}

// NewRenderer builds a renderer drawing modules in the given #rrggbb color
// on a white background.
func NewRenderer(hexColor string) (*Renderer, error) {
	fg, err := ParseHexColor(hexColor)
	if err != nil {
		return nil, err
	}
	return &Renderer{foreground: fg, background: color.White}, nil
}

// Render encodes content and returns the PNG bytes.
func (r *Renderer) Render(content string) ([]byte, error) {
	code, err := qrcode.New(content, qrcode.Highest)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	code.ForegroundColor = r.foreground
	code.BackgroundColor = r.background

	png, err := code.PNG(-moduleSize)
	if err != nil {
		return nil, fmt.Errorf("render qr png: %w", err)
	}
	return png, nil
}

// DataURI embeds a PNG into a data URI string.
func DataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

// ParseHexColor parses #rrggbb or #rgb.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
