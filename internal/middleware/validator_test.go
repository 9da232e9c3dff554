package middleware

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateIdentifier(t *testing.T) {
	assert.NoError(t, ValidateIdentifier("table", "customer_reviews"))
	assert.NoError(t, ValidateIdentifier("table", "_t1"))

	for _, bad := range []string{"", "1reviews", "reviews;drop", "a b", "naïve", strings.Repeat("x", 65)} {
		assert.Error(t, ValidateIdentifier("table", bad), bad)
	}
}

func TestValidateColumn(t *testing.T) {
	assert.NoError(t, ValidateColumn("Customer Feedback"))
	assert.Error(t, ValidateColumn("   "))
	assert.Error(t, ValidateColumn(strings.Repeat("c", 257)))
}

func TestValidateObjectKey(t *testing.T) {
	assert.NoError(t, ValidateObjectKey("exports/2025/reviews.csv"))
	assert.NoError(t, ValidateObjectKey("/exports/reviews.csv"))
	assert.Error(t, ValidateObjectKey(""))
	assert.Error(t, ValidateObjectKey("../secret.csv"))
	assert.Error(t, ValidateObjectKey("a/../../b.csv"))
	assert.Error(t, ValidateObjectKey("a\\b.csv"))
}

func TestValidateTopK(t *testing.T) {
	k, err := ValidateTopK("", 15, 100)
	require.NoError(t, err)
	assert.Equal(t, 15, k)

	k, err = ValidateTopK("3", 15, 100)
	require.NoError(t, err)
	assert.Equal(t, 3, k)

	k, err = ValidateTopK("5000", 15, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, k)

	_, err = ValidateTopK("0", 15, 100)
	assert.Error(t, err)
	_, err = ValidateTopK("ten", 15, 100)
	assert.Error(t, err)
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "abc", SanitizeString(" a\x00b\x07c \r"))
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, 5, ValidateLimit(0))
	assert.Equal(t, 20, ValidateLimit(20))
	assert.Equal(t, 100, ValidateLimit(1000))
}
