package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateGroupSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		slug    string
		wantErr bool
	}{
		{"valid simple", "golang", false},
		{"valid with hyphen", "go-news", false},
		{"valid with digits", "web3", false},
		{"too short", "go", true},
		{"too long", strings.Repeat("a", 51), true},
		{"uppercase", "GoLang", true},
		{"spaces", "go lang", true},
		{"leading hyphen", "-golang", true},
		{"trailing hyphen", "golang-", true},
		{"reserved route word", "create", true},
		{"reserved profile", "profile", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateGroupSlug(tt.slug)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateUsername("leo_writer"))
	assert.NoError(t, ValidateUsername("abc"))
	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername("_leading"))
	assert.Error(t, ValidateUsername("trailing-"))
	assert.Error(t, ValidateUsername("has space"))
	assert.Error(t, ValidateUsername(strings.Repeat("x", 31)))
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidatePassword("Sup3rSecret2024"))
	assert.Error(t, ValidatePassword("Short1a"))
	assert.Error(t, ValidatePassword("alllowercase123"))
	assert.Error(t, ValidatePassword("ALLUPPERCASE123"))
	assert.Error(t, ValidatePassword("NoDigitsHereAtAll"))
	assert.Error(t, ValidatePassword(strings.Repeat("Aa1", 43)+"Aa1"))
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateEmail("reader@example.com"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@tld"))
}
