package kalshi

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKeyPEM(t *testing.T) (string, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	pemStr := string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
	return pemStr, key
}

func TestSigner_SignatureVerifies(t *testing.T) {
	pemStr, key := testKeyPEM(t)
	s, err := newSigner(pemStr)
	require.NoError(t, err)

	sig, err := s.sign("1735689600000", "GET", "/trade-api/v2/portfolio/fills")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(sig)
	require.NoError(t, err)

	hashed := sha256.Sum256([]byte("1735689600000GET/trade-api/v2/portfolio/fills"))
	err = rsa.VerifyPSS(&key.PublicKey, crypto.SHA256, hashed[:], raw, &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthEqualsHash,
		Hash:       crypto.SHA256,
	})
	assert.NoError(t, err, "la firma debe verificar con PSS salt = hash length")
}

func TestSigner_NormalizesEscapedNewlines(t *testing.T) {
	pemStr, _ := testKeyPEM(t)
	escaped := strings.ReplaceAll(pemStr, "\n", `\n`)

	s, err := newSigner(escaped)
	require.NoError(t, err)

	_, err = s.sign("1", "GET", "/x")
	assert.NoError(t, err)
}

func TestSigner_AcceptsPKCS1(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pemStr := string(pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}))

	_, err = newSigner(pemStr)
	assert.NoError(t, err)
}

func TestSigner_MalformedKey(t *testing.T) {
	_, err := newSigner("not a pem key")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestNewClient_MissingCredentials(t *testing.T) {
	_, err := NewClient("", "", "")
	assert.ErrorIs(t, err, ErrMissingCredentials)

	pemStr, _ := testKeyPEM(t)
	_, err = NewClient("", "key-id", pemStr)
	assert.NoError(t, err)
}
