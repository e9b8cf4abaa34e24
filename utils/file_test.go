package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimestampedNameKeepsExtension(t *testing.T) {
	name := TimestampedName("tax guide.pdf")
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.True(t, strings.HasPrefix(name, "tax_guide_"))
}

func TestTimestampedNameSanitizesPath(t *testing.T) {
	name := TimestampedName("../../etc/passwd.pdf")
	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, "..")
}

func TestTimestampedNameUnique(t *testing.T) {
	assert.NotEqual(t, TimestampedName("a.pdf"), TimestampedName("a.pdf"))
}
