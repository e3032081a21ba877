package infrastructure

import "github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/e"

// GetExtensionFromMIME maps an image MIME type to a file extension. Supports
// jpeg, png and webp; anything else is e.ErrUnsupportedMediaType.
func GetExtensionFromMIME(mime string) (string, error) {
	switch mime {
	case "image/jpeg", "image/jpg":
		return "jpg", nil
	case "image/png":
		return "png", nil
	case "image/webp":
		return "webp", nil
	default:
		return "", e.ErrUnsupportedMediaType
	}
}
