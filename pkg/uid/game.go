package uid

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateGameID returns a random 32-char hex ID
func GenerateGameID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
