package tlsutil

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSelfSigned(t *testing.T, dir string) (certFile, keyFile string) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{Organization: []string{"credit-risk-service test"}},
		NotBefore:             time.Now().Add(-time.Minute),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		DNSNames:              []string{"localhost"},
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	keyDER, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	certFile = filepath.Join(dir, "server.pem")
	keyFile = filepath.Join(dir, "server-key.pem")
	require.NoError(t, os.WriteFile(certFile, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600))
	require.NoError(t, os.WriteFile(keyFile, pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER}), 0o600))
	return certFile, keyFile
}

func TestServerTLSConfig(t *testing.T) {
	dir := t.TempDir()
	certFile, keyFile := writeSelfSigned(t, dir)

	creds, err := ServerTLSConfig(certFile, keyFile, "")
	require.NoError(t, err)
	assert.Equal(t, "tls", creds.Info().SecurityProtocol)

	t.Run("mutual TLS with client CA", func(t *testing.T) {
		creds, err := ServerTLSConfig(certFile, keyFile, certFile)
		require.NoError(t, err)
		assert.NotNil(t, creds)
	})

	t.Run("missing key pair", func(t *testing.T) {
		_, err := ServerTLSConfig(filepath.Join(dir, "nope.pem"), keyFile, "")
		require.Error(t, err)
	})

	t.Run("garbage client CA", func(t *testing.T) {
		bad := filepath.Join(dir, "bad-ca.pem")
		require.NoError(t, os.WriteFile(bad, []byte("not a cert"), 0o600))
		_, err := ServerTLSConfig(certFile, keyFile, bad)
		require.Error(t, err)
	})
}
