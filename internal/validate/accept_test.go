package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccept(t *testing.T) {
	rules := ParseAccept(".pdf, application/pdf , image/*,, .TXT")
	require.Len(t, rules, 4)

	t.Run("extension rules are case-insensitive", func(t *testing.T) {
		assert.True(t, AnyMatch(rules, ".pdf", ""))
		assert.True(t, AnyMatch(rules, ".txt", "text/plain"))
		assert.False(t, AnyMatch(rules, ".docx", "application/msword"))
	})

	t.Run("mime rules match full type", func(t *testing.T) {
		assert.True(t, AnyMatch(rules, ".bin", "application/pdf"))
		assert.False(t, AnyMatch(rules, ".bin", "application/zip"))
	})

	t.Run("wildcard matches media-type prefix", func(t *testing.T) {
		assert.True(t, AnyMatch(rules, ".png", "image/png"))
		assert.True(t, AnyMatch(rules, ".jpg", "image/jpeg"))
		assert.False(t, AnyMatch(rules, ".mp4", "video/mp4"))
	})
}

func TestEmptyAcceptListAcceptsEverything(t *testing.T) {
	rules := ParseAccept("")
	assert.Empty(t, rules)
	assert.True(t, AnyMatch(rules, ".anything", "application/octet-stream"))
}

func TestMimeMatchingIsCaseInsensitive(t *testing.T) {
	rules := ParseAccept("application/pdf")
	assert.True(t, AnyMatch(rules, ".pdf", "Application/PDF"))
}
