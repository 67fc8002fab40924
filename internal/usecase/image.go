package usecase

import (
	"encoding/base64"
	"mime"
	"net/http"
	"strings"

	"github.com/phenrril/skywholesale/internal/domain"
)

// ImageDataURI accepts an admin upload and returns it inlined as a data URI.
// An empty contentType is sniffed from the bytes.
func ImageDataURI(contentType string, data []byte, maxBytes int64) (string, error) {
	ct := strings.TrimSpace(contentType)
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return "", domain.NewValidationError(domain.FieldImage, domain.MsgImageType)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return "", domain.NewValidationError(domain.FieldImage, domain.MsgImageTooLarge)
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
