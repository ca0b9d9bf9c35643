// Package pagination implements opaque keyset cursors for list endpoints.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/audriusk/sandelis_backend/internal/apperrors"
)

type cursor struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"id"`
}

// EncodeToken packs the last row's sort key into an opaque cursor.
func EncodeToken(createdAt time.Time, id string) string {
	payload, _ := json.Marshal(cursor{CreatedAt: createdAt, ID: id})
	return base64.URLEncoding.EncodeToString(payload)
}

// DecodeToken unpacks a cursor. Malformed tokens map to a validation error so
// handlers return 400 rather than 500.
func DecodeToken(token string) (time.Time, string, error) {
	payload, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
	}
	var c cursor
	if err := json.Unmarshal(payload, &c); err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
	}
	if c.ID == "" || c.CreatedAt.IsZero() {
		return time.Time{}, "", fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
	}
	return c.CreatedAt, c.ID, nil
}
