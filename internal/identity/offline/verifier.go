// Package offline verifies the detached signature carried by an offline KYC
// XML container against the issuer's published RSA public key. The check runs
// entirely locally; no issuer service is contacted.
package offline

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"encoding/xml"
	"fmt"
	"log/slog"
)

// Result is the tri-state outcome of an offline verification attempt.
// NotAttempted means the container or issuer key was never supplied; it must
// not be treated as a failure by callers.
type Result int

const (
	ResultNotAttempted Result = iota
	ResultVerified
	ResultFailed
)

func (r Result) String() string {
	switch r {
	case ResultVerified:
		return "verified"
	case ResultFailed:
		return "failed"
	default:
		return "not_attempted"
	}
}

// container mirrors the signed XML root: the payload lives in the `data`
// attribute and the hex-encoded signature in the `signature` attribute.
type container struct {
	Signature string `xml:"signature,attr"`
	Data      string `xml:"data,attr"`
}

// Verifier checks offline KYC containers against a fixed issuer key.
type Verifier struct {
	publicKey *rsa.PublicKey
	logger    *slog.Logger
}

// New parses the PEM-encoded issuer public key. An empty key yields a
// verifier that reports ResultNotAttempted for every document.
func New(issuerKeyPEM []byte, logger *slog.Logger) (*Verifier, error) {
	v := &Verifier{logger: logger}
	if len(issuerKeyPEM) == 0 {
		return v, nil
	}
	block, _ := pem.Decode(issuerKeyPEM)
	if block == nil {
		return nil, fmt.Errorf("issuer key: no PEM block found")
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("issuer key: %w", err)
	}
	rsaKey, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("issuer key: expected RSA public key, got %T", parsed)
	}
	v.publicKey = rsaKey
	return v, nil
}

// Verify checks the container's signature over its data attribute using
// PKCS#1 v1.5 padding and SHA-256. Callers only learn the tri-state result;
// the distinct failure causes (missing artifact, malformed container,
// signature mismatch) are logged for audit but deliberately not surfaced.
func (v *Verifier) Verify(document []byte) Result {
	if v.publicKey == nil || len(document) == 0 {
		v.log("offline verification skipped", "reason", "document or issuer key missing")
		return ResultNotAttempted
	}

	var doc container
	if err := xml.Unmarshal(document, &doc); err != nil {
		v.log("offline verification failed", "reason", "container parse error", "error", err)
		return ResultFailed
	}
	if doc.Signature == "" || doc.Data == "" {
		v.log("offline verification failed", "reason", "signature or data attribute missing")
		return ResultFailed
	}

	signature, err := hex.DecodeString(doc.Signature)
	if err != nil {
		v.log("offline verification failed", "reason", "signature not hex encoded", "error", err)
		return ResultFailed
	}

	digest := sha256.Sum256([]byte(doc.Data))
	if err := rsa.VerifyPKCS1v15(v.publicKey, crypto.SHA256, digest[:], signature); err != nil {
		v.log("offline verification failed", "reason", "signature mismatch")
		return ResultFailed
	}

	v.log("offline signature verification passed")
	return ResultVerified
}

func (v *Verifier) log(msg string, args ...any) {
	if v.logger != nil {
		v.logger.Info(msg, args...)
	}
}
