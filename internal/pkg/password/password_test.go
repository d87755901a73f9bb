package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("passw0rd123")
	require.NoError(t, err)
	assert.NotEqual(t, "passw0rd123", hash)

	assert.True(t, Verify("passw0rd123", hash))
	assert.False(t, Verify("wrongpass1", hash))
	assert.False(t, Verify("passw0rd123", "not-a-bcrypt-hash"))
}

func TestHashToken(t *testing.T) {
	a := HashToken("some-refresh-token")
	b := HashToken("some-refresh-token")
	c := HashToken("another-token")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64) // hex-encoded SHA256
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"letters and digits", "passw0rd123", true},
		{"minimum length", "abcdefg1", true},
		{"too short", "abc1234", false},
		{"digits only", "12345678", false},
		{"letters only", "abcdefgh", false},
		{"empty", "", false},
		{"unicode letters count", "pässwörd1", true},
		{"symbols alone do not satisfy", "!!!!!!!!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePassword(tt.password))
		})
	}
}
