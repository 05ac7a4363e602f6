package label

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// qrImageSize is the side length in pixels of rendered QR images.
const qrImageSize = 300

// QRImage renders a code string as a QR PNG and returns it as a base64
// data URL suitable for embedding directly in a JSON response or an
// <img> tag. Rendering is a pure function of the code string.
func QRImage(code string) (string, error) {
	png, err := qrcode.Encode(code, qrcode.Medium, qrImageSize)
	if err != nil {
		return "", fmt.Errorf("rendering qr image for %q: %w", code, err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
