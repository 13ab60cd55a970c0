package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 20))
	assert.Equal(t, "exactly twenty chars", truncate("exactly twenty chars", 20))

	long := truncate("a name that runs well past the column", 20)
	assert.Equal(t, 20, utf8.RuneCountInString(long))
	assert.True(t, strings.HasSuffix(long, "..."))
}

func TestTruncate_MultibyteName(t *testing.T) {
	got := truncate("Æþelflæd Æþelflæd Æþelflæd", 20)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 20, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}
