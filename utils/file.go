package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// TimestampedName builds a filesystem-safe staging name of the form
// originalname_timestamp.extension so concurrent uploads of the same file
// never collide.
func TimestampedName(originalName string) string {
	ext := filepath.Ext(originalName)
	base := strings.TrimSuffix(filepath.Base(originalName), ext)
	name := fmt.Sprintf("%s_%d%s", base, time.Now().UnixNano(), ext)

	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, name)
}
