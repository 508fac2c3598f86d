package auth

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// SeedLength is the raw byte length of an Ed25519 private key seed.
const SeedLength = ed25519.SeedSize

// KeyPair holds a freshly generated Ed25519 key pair with both sides
// Base64-encoded. PrivateKey is the 32-byte seed, not the expanded 64-byte
// form. The seed must be treated as a secret.
type KeyPair struct {
	PrivateKey string
	PublicKey  string
}

// GenerateKeyPair produces a new Ed25519 key pair from the system's
// cryptographically secure random source.
func GenerateKeyPair() (KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return KeyPair{}, &KeyGenerationError{Cause: err}
	}
	return KeyPair{
		PrivateKey: base64.StdEncoding.EncodeToString(priv.Seed()),
		PublicKey:  base64.StdEncoding.EncodeToString(pub),
	}, nil
}

// DecodeSeed decodes a Base64 private key seed and checks its length.
func DecodeSeed(seed string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(seed)
	if err != nil {
		return nil, &KeyFormatError{Cause: err}
	}
	if len(raw) != SeedLength {
		return nil, &KeyFormatError{Cause: fmt.Errorf("decoded seed is %d bytes, want %d", len(raw), SeedLength)}
	}
	return raw, nil
}

// ComputeSignature signs an arbitrary payload with the given Base64 seed
// and returns the Base64-encoded Ed25519 signature. Ed25519 signing is
// deterministic: the same payload and seed always yield the same
// signature.
func ComputeSignature(payload []byte, seed string) (string, error) {
	raw, err := DecodeSeed(seed)
	if err != nil {
		return "", err
	}
	key := ed25519.NewKeyFromSeed(raw)
	sig := ed25519.Sign(key, payload)
	return base64.StdEncoding.EncodeToString(sig), nil
}

// Sign computes the signature over the request's canonical payload and
// returns the signed request. The input request is not modified.
func Sign(req Request, seed string) (SignedRequest, error) {
	sig, err := ComputeSignature(req.Payload(), seed)
	if err != nil {
		return SignedRequest{}, err
	}
	return SignedRequest{Request: req, Signature: sig}, nil
}

// Verify reports whether signature is a valid Base64 Ed25519 signature
// over payload for the given Base64 public key. The dispatcher never calls
// this; it exists for key management tooling and tests.
func Verify(payload []byte, signature, publicKey string) bool {
	pub, err := base64.StdEncoding.DecodeString(publicKey)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return false
	}
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), payload, sig)
}
