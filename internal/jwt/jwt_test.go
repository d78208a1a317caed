package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupKeys(t *testing.T) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	SetKeys(key, &key.PublicKey)
}

func signClaims(t *testing.T, claims jwtgo.RegisteredClaims) string {
	t.Helper()

	signedToken, err := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, claims).SignedString(privateKey)
	require.NoError(t, err)
	return signedToken
}

func TestSignAndValidAddress(t *testing.T) {
	setupKeys(t)

	sign, err := Sign("0xabc")
	assert.NoError(t, err)

	address, err := ValidAddress(sign)
	assert.NoError(t, err)
	assert.Equal(t, "0xabc", address)

	_, err = Sign("")
	assert.EqualError(t, err, "address is required")
}

func TestValidAddress_InvalidAudience(t *testing.T) {
	setupKeys(t)

	signedToken := signClaims(t, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{"different-audience"},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   Issuer,
		Subject:  "0xabc",
	})

	address, err := ValidAddress(signedToken)
	assert.EqualError(t, err, "invalid audience")
	assert.Equal(t, "", address)
}

func TestValidAddress_InvalidIssuer(t *testing.T) {
	setupKeys(t)

	signedToken := signClaims(t, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   "invalid-issuer",
		Subject:  "0xabc",
	})

	address, err := ValidAddress(signedToken)
	assert.EqualError(t, err, "invalid issuer")
	assert.Equal(t, "", address)
}

func TestValidAddress_Expired(t *testing.T) {
	setupKeys(t)

	signedToken := signClaims(t, jwtgo.RegisteredClaims{
		Audience:  jwtgo.ClaimStrings{Audience},
		ID:        uuid.New().String(),
		IssuedAt:  jwtgo.NewNumericDate(time.Now()),
		ExpiresAt: jwtgo.NewNumericDate(time.Now().Add(-time.Hour)),
		Issuer:    Issuer,
		Subject:   "0xabc",
	})

	address, err := ValidAddress(signedToken)
	assert.ErrorIs(t, err, jwtgo.ErrTokenExpired)
	assert.Equal(t, "", address)
}

func TestValidAddress_WrongKey(t *testing.T) {
	setupKeys(t)
	signedToken, err := Sign("0xabc")
	require.NoError(t, err)

	setupKeys(t)
	_, err = ValidAddress(signedToken)
	assert.ErrorIs(t, err, jwtgo.ErrTokenSignatureInvalid)
}

func TestLoadKeysFromFiles(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.key")
	publicPath := filepath.Join(dir, "public.pem")

	privateBytes := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	require.NoError(t, os.WriteFile(privatePath, privateBytes, 0600))

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})
	require.NoError(t, os.WriteFile(publicPath, publicBytes, 0644))

	assert.Equal(t, key.N, loadPrivateKey(privatePath).N)
	assert.Equal(t, key.N, loadPublicKey(publicPath).N)
}
