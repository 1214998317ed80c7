package validators

import (
	"strings"

	pkgerrors "github.com/angelmondragon/cartoptions-backend/pkg/errors"
)

const maxCartTokenLength = 64

// CartToken trims raw and rejects values that could not have been issued as a cart token.
func CartToken(raw string) (string, error) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	if len(token) > maxCartTokenLength {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart token is invalid")
	}
	for _, r := range token {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return "", pkgerrors.New(pkgerrors.CodeValidation, "cart token is invalid")
		}
	}
	return token, nil
}
