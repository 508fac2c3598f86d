package auth

import (
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyPair(t *testing.T) {
	t.Run("produces decodable 32-byte keys", func(t *testing.T) {
		pair, err := GenerateKeyPair()
		require.NoError(t, err)

		seed, err := base64.StdEncoding.DecodeString(pair.PrivateKey)
		require.NoError(t, err)
		assert.Len(t, seed, SeedLength)

		pub, err := base64.StdEncoding.DecodeString(pair.PublicKey)
		require.NoError(t, err)
		assert.Len(t, pub, 32)
	})

	t.Run("successive pairs differ", func(t *testing.T) {
		first, err := GenerateKeyPair()
		require.NoError(t, err)
		second, err := GenerateKeyPair()
		require.NoError(t, err)

		assert.NotEqual(t, first.PrivateKey, second.PrivateKey)
		assert.NotEqual(t, first.PublicKey, second.PublicKey)
	})
}

func TestDecodeSeed(t *testing.T) {
	t.Run("round-trips a 32-byte seed exactly", func(t *testing.T) {
		raw := make([]byte, SeedLength)
		for i := range raw {
			raw[i] = byte(i)
		}
		encoded := base64.StdEncoding.EncodeToString(raw)

		decoded, err := DecodeSeed(encoded)

		require.NoError(t, err)
		assert.Equal(t, raw, decoded)
	})

	t.Run("rejects malformed base64", func(t *testing.T) {
		_, err := DecodeSeed("not-base64!!!")

		require.Error(t, err)
		var formatErr *KeyFormatError
		assert.ErrorAs(t, err, &formatErr)
	})

	t.Run("rejects wrong-length seed", func(t *testing.T) {
		short := base64.StdEncoding.EncodeToString([]byte("too short"))

		_, err := DecodeSeed(short)

		require.Error(t, err)
		var formatErr *KeyFormatError
		assert.ErrorAs(t, err, &formatErr)
		assert.Contains(t, err.Error(), "32")
	})
}

func TestSign(t *testing.T) {
	pair, err := GenerateKeyPair()
	require.NoError(t, err)

	req := Request{
		APIKey:    "test-api-key",
		Path:      "/api/v1/crypto/trading/accounts/",
		Method:    http.MethodGet,
		Timestamp: 1700000000,
	}

	t.Run("signature verifies against the public key", func(t *testing.T) {
		signed, err := Sign(req, pair.PrivateKey)
		require.NoError(t, err)

		require.NotEmpty(t, signed.Signature)
		assert.True(t, Verify(req.Payload(), signed.Signature, pair.PublicKey))
	})

	t.Run("reproduces the expected signature for a fixed key and fields", func(t *testing.T) {
		// Known-answer vector: the all-zero 32-byte seed over the exact
		// payload "test-api-key1700000000/api/v1/crypto/trading/accounts/GET".
		// Any change to the canonical payload or the encoding breaks this.
		seed := base64.StdEncoding.EncodeToString(make([]byte, SeedLength))

		signed, err := Sign(req, seed)
		require.NoError(t, err)

		expected := "GJvxh+FtdIDOdo/TVYQnfdd4dtz1j4dhVpJcpx3/HXTDdKc9aSyGpFmH9aQ4nwqLrPbberflix0UHykNatncAg=="
		assert.Equal(t, expected, signed.Signature)
	})

	t.Run("signing is deterministic for fixed fields", func(t *testing.T) {
		first, err := Sign(req, pair.PrivateKey)
		require.NoError(t, err)
		second, err := Sign(req, pair.PrivateKey)
		require.NoError(t, err)

		assert.Equal(t, first.Signature, second.Signature)
	})

	t.Run("any field change alters the signature", func(t *testing.T) {
		base, err := Sign(req, pair.PrivateKey)
		require.NoError(t, err)

		changed := req
		changed.Timestamp++
		resigned, err := Sign(changed, pair.PrivateKey)
		require.NoError(t, err)

		assert.NotEqual(t, base.Signature, resigned.Signature)
	})

	t.Run("does not modify the input request", func(t *testing.T) {
		signed, err := Sign(req, pair.PrivateKey)
		require.NoError(t, err)

		assert.Equal(t, req, signed.Request)
	})

	t.Run("rejects a bad seed before signing", func(t *testing.T) {
		_, err := Sign(req, "???")

		require.Error(t, err)
		var formatErr *KeyFormatError
		assert.ErrorAs(t, err, &formatErr)
	})
}

func TestVerify(t *testing.T) {
	pair, err := GenerateKeyPair()
	require.NoError(t, err)

	payload := []byte("payload under test")
	sig, err := ComputeSignature(payload, pair.PrivateKey)
	require.NoError(t, err)

	t.Run("accepts a valid signature", func(t *testing.T) {
		assert.True(t, Verify(payload, sig, pair.PublicKey))
	})

	t.Run("rejects a tampered payload", func(t *testing.T) {
		assert.False(t, Verify([]byte("tampered"), sig, pair.PublicKey))
	})

	t.Run("rejects the wrong public key", func(t *testing.T) {
		other, err := GenerateKeyPair()
		require.NoError(t, err)

		assert.False(t, Verify(payload, sig, other.PublicKey))
	})

	t.Run("rejects undecodable inputs", func(t *testing.T) {
		assert.False(t, Verify(payload, "%%%", pair.PublicKey))
		assert.False(t, Verify(payload, sig, "%%%"))
	})
}
