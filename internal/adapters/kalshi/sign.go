package kalshi

// sign.go — Kalshi request signing.
//
// Every authenticated request carries an RSA-PSS SHA-256 signature over
// timestamp + method + path. Per Kalshi's scheme the query string is
// excluded from the signed payload.

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"strings"
)

// signer signs request payloads with the account's RSA private key.
type signer struct {
	key *rsa.PrivateKey
}

// newSigner parses the PEM private key and returns a ready signer.
// Accepts PKCS#1 and PKCS#8 encodings; literal "\n" sequences (common when
// the key is pasted into an env var) are normalized to real newlines.
func newSigner(privateKeyPEM string) (*signer, error) {
	key, err := parsePrivateKey(privateKeyPEM)
	if err != nil {
		return nil, err
	}
	return &signer{key: key}, nil
}

// sign returns the base64 RSA-PSS signature over timestamp || method || path.
// Salt length equals the digest length, matching the server's verification.
func (s *signer) sign(timestamp, method, path string) (string, error) {
	digest := crypto.SHA256.New()
	digest.Write([]byte(timestamp + method + path))
	hashed := digest.Sum(nil)

	sig, err := rsa.SignPSS(rand.Reader, s.key, crypto.SHA256, hashed, &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthEqualsHash,
		Hash:       crypto.SHA256,
	})
	if err != nil {
		return "", fmt.Errorf("kalshi: sign request: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

func parsePrivateKey(raw string) (*rsa.PrivateKey, error) {
	normalized := strings.TrimSpace(raw)
	if strings.Contains(normalized, `\n`) {
		normalized = strings.ReplaceAll(normalized, `\n`, "\n")
	}

	block, _ := pem.Decode([]byte(normalized))
	if block == nil {
		return nil, fmt.Errorf("kalshi: private key is not valid PEM: %w", ErrMissingCredentials)
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("kalshi: parse private key: %w", err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("kalshi: private key is %T, want RSA", parsed)
	}
	return key, nil
}
