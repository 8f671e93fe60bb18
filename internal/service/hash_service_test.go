package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap parameters keep the suite fast; production cost is exercised once.
var testArgon2Params = Argon2Params{Time: 1, Memory: 1024, Threads: 1}

func TestArgon2HashService_HashAndVerify(t *testing.T) {
	svc := NewArgon2HashService(testArgon2Params)

	pin := "4821"
	hash, err := svc.Hash(pin)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"), "hash should start with $argon2id$v=19$")
	assert.NotContains(t, hash, pin)

	match, err := svc.Verify(pin, hash)
	require.NoError(t, err)
	assert.True(t, match, "correct secret should verify")
}

func TestArgon2HashService_VerifyWrongSecret(t *testing.T) {
	svc := NewArgon2HashService(testArgon2Params)

	hash, err := svc.Hash("1234")
	require.NoError(t, err)

	match, err := svc.Verify("1235", hash)
	require.NoError(t, err)
	assert.False(t, match, "wrong secret should not verify")
}

func TestArgon2HashService_UniqueSalts(t *testing.T) {
	svc := NewArgon2HashService(testArgon2Params)

	hash1, err := svc.Hash("same-pin")
	require.NoError(t, err)

	hash2, err := svc.Hash("same-pin")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2, "same secret should produce different hashes (different salts)")

	for _, h := range []string{hash1, hash2} {
		ok, err := svc.Verify("same-pin", h)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestArgon2HashService_EmptySecret(t *testing.T) {
	svc := NewArgon2HashService(testArgon2Params)

	hash, err := svc.Hash("")
	require.NoError(t, err)

	match, err := svc.Verify("", hash)
	require.NoError(t, err)
	assert.True(t, match)
}

func TestArgon2HashService_VerifyInvalidFormat(t *testing.T) {
	svc := NewArgon2HashService(testArgon2Params)

	tests := []struct {
		name    string
		encoded string
	}{
		{"garbage", "not-a-valid-hash"},
		{"wrong algorithm", "$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=16$m=1024,t=1,p=1$c2FsdA$aGFzaA"},
		{"bad params", "$argon2id$v=19$m=x,t=1,p=1$c2FsdA$aGFzaA"},
		{"zero params", "$argon2id$v=19$m=0,t=1,p=1$c2FsdA$aGFzaA"},
		{"bad salt", "$argon2id$v=19$m=1024,t=1,p=1$!!!$aGFzaA"},
		{"empty hash", "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify("1234", tt.encoded)
			assert.Error(t, err)
		})
	}
}

func TestArgon2HashService_DefaultParams(t *testing.T) {
	svc := NewArgon2HashService(Argon2Params{})

	hash, err := svc.Hash("test")
	require.NoError(t, err)

	assert.Contains(t, hash, "m=65536,t=1,p=4", "zero params should fall back to defaults")
}

func TestArgon2HashService_VerifyUsesEncodedParams(t *testing.T) {
	cheap := NewArgon2HashService(testArgon2Params)
	hash, err := cheap.Hash("9876")
	require.NoError(t, err)

	stronger := NewArgon2HashService(Argon2Params{Time: 2, Memory: 2048, Threads: 2})
	match, err := stronger.Verify("9876", hash)
	require.NoError(t, err)
	assert.True(t, match, "hashes made under older cost settings must still verify")
}

func TestArgon2HashService_LongSecret(t *testing.T) {
	svc := NewArgon2HashService(testArgon2Params)

	long := strings.Repeat("7", 1000)
	hash, err := svc.Hash(long)
	require.NoError(t, err)

	match, err := svc.Verify(long, hash)
	require.NoError(t, err)
	assert.True(t, match)
}
