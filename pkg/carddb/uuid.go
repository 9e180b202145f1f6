package carddb

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// uuidHyphens are the mandatory hyphen offsets of the canonical
// 8-4-4-4-12 form. uuid.Parse alone is too permissive for identity
// columns: it also accepts braced, URN and 32-character undashed
// encodings.
var uuidHyphens = [...]int{8, 13, 18, 23}

const uuidLen = 36

// ValidUUID reports whether s is a well-formed 8-4-4-4-12 UUID. Hex
// digits may use either case; any missing or misplaced hyphen and any
// non-hex character is rejected.
func ValidUUID(s string) bool {
	if len(s) != uuidLen {
		return false
	}
	for _, pos := range uuidHyphens {
		if s[pos] != '-' {
			return false
		}
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// NormalizeUUID validates s and returns its lowercase canonical form,
// the representation stored and compared throughout the database. A
// malformed value is never coerced; it is reported as an error for the
// caller to turn into an IntegrityViolation.
func NormalizeUUID(s string) (string, error) {
	if !ValidUUID(s) {
		return "", fmt.Errorf("malformed UUID: %q", s)
	}
	return strings.ToLower(s), nil
}
