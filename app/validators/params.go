package validators

import (
	"strconv"
	"strings"

	pkgerrors "github.com/mytheresa/stock-tracker/pkg/errors"
)

// ParseID parses a positive integer path identifier.
func ParseID(raw, what string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || value == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+what+" id")
	}
	return uint(value), nil
}

func SanitizeString(input string) string {
	return strings.TrimSpace(input)
}
