package tlsconfig

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeSelfSigned writes a self-signed certificate usable as both CA and leaf
func writeSelfSigned(t *testing.T) (certFile, keyFile string) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "localhost"},
		DNSNames:              []string{"localhost"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}
	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		t.Fatalf("marshal key: %v", err)
	}

	dir := t.TempDir()
	certFile = filepath.Join(dir, "cert.pem")
	keyFile = filepath.Join(dir, "key.pem")
	if err := os.WriteFile(certFile, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600); err != nil {
		t.Fatalf("write cert: %v", err)
	}
	if err := os.WriteFile(keyFile, pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER}), 0o600); err != nil {
		t.Fatalf("write key: %v", err)
	}
	return certFile, keyFile
}

func TestLoadServerTLS_WithCA(t *testing.T) {
	cert, key := writeSelfSigned(t)

	cfg, err := LoadServerTLS(cert, key, cert)
	if err != nil {
		t.Fatalf("LoadServerTLS failed: %v", err)
	}
	if cfg.ClientAuth != tls.RequireAndVerifyClientCert {
		t.Errorf("expected client certs to be required, got %v", cfg.ClientAuth)
	}
	if cfg.ClientCAs == nil {
		t.Error("expected client CA pool")
	}
}

func TestLoadServerTLS_WithoutCA(t *testing.T) {
	cert, key := writeSelfSigned(t)

	cfg, err := LoadServerTLS(cert, key, "")
	if err != nil {
		t.Fatalf("LoadServerTLS failed: %v", err)
	}
	if cfg.ClientAuth != tls.NoClientCert {
		t.Errorf("expected no client auth, got %v", cfg.ClientAuth)
	}
	if len(cfg.Certificates) != 1 {
		t.Errorf("expected 1 certificate, got %d", len(cfg.Certificates))
	}
}

func TestLoadClientTLS(t *testing.T) {
	cert, key := writeSelfSigned(t)

	cfg, err := LoadClientTLS(cert, key, cert)
	if err != nil {
		t.Fatalf("LoadClientTLS failed: %v", err)
	}
	if cfg.RootCAs == nil {
		t.Error("expected root CA pool")
	}
}

func TestLoadErrors(t *testing.T) {
	cert, key := writeSelfSigned(t)
	garbage := filepath.Join(t.TempDir(), "garbage.pem")
	os.WriteFile(garbage, []byte("not a certificate"), 0o600)

	if _, err := LoadServerTLS("missing.pem", key, ""); err == nil {
		t.Error("expected error for missing cert")
	}
	if _, err := LoadServerTLS(cert, key, "missing-ca.pem"); err == nil {
		t.Error("expected error for missing CA")
	}
	if _, err := LoadClientTLS(cert, key, garbage); err == nil {
		t.Error("expected error for unparsable CA")
	}
}
