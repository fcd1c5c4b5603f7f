package offline

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedContainer(t *testing.T, key *rsa.PrivateKey, data string) []byte {
	t.Helper()
	digest := sha256.Sum256([]byte(data))
	signature, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
	require.NoError(t, err)
	return []byte(fmt.Sprintf(
		`<OfflineKyc signature=%q data=%q></OfflineKyc>`,
		hex.EncodeToString(signature), data,
	))
}

func issuerKeyPEM(t *testing.T, key *rsa.PrivateKey) []byte {
	t.Helper()
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
}

func TestVerifier(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	verifier, err := New(issuerKeyPEM(t, key), nil)
	require.NoError(t, err)

	t.Run("valid signature verifies", func(t *testing.T) {
		doc := signedContainer(t, key, "uid=999941057058 name=Sample Resident")
		assert.Equal(t, ResultVerified, verifier.Verify(doc))
	})

	t.Run("mutated payload fails", func(t *testing.T) {
		mutated := signedContainer(t, key, "uid=999941057058")
		// flip the last digit of the data attribute
		for i := len(mutated) - 1; i > 0; i-- {
			if mutated[i] == '8' {
				mutated[i] = '9'
				break
			}
		}
		assert.Equal(t, ResultFailed, verifier.Verify(mutated))
	})

	t.Run("mutated signature fails", func(t *testing.T) {
		doc := signedContainer(t, key, "uid=999941057058")
		// the signature attribute starts right after the first quote
		for i := range doc {
			if doc[i] == '"' {
				if doc[i+1] == 'a' {
					doc[i+1] = 'b'
				} else {
					doc[i+1] = 'a'
				}
				break
			}
		}
		assert.Equal(t, ResultFailed, verifier.Verify(doc))
	})

	t.Run("wrong issuer key fails", func(t *testing.T) {
		otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		otherVerifier, err := New(issuerKeyPEM(t, otherKey), nil)
		require.NoError(t, err)

		doc := signedContainer(t, key, "uid=999941057058")
		assert.Equal(t, ResultFailed, otherVerifier.Verify(doc))
	})

	t.Run("missing attributes fail without panicking", func(t *testing.T) {
		assert.Equal(t, ResultFailed, verifier.Verify([]byte(`<OfflineKyc data="x"></OfflineKyc>`)))
		assert.Equal(t, ResultFailed, verifier.Verify([]byte(`<OfflineKyc signature="ab"></OfflineKyc>`)))
	})

	t.Run("malformed xml fails", func(t *testing.T) {
		assert.Equal(t, ResultFailed, verifier.Verify([]byte(`not xml at all`)))
	})

	t.Run("non hex signature fails", func(t *testing.T) {
		assert.Equal(t, ResultFailed, verifier.Verify([]byte(`<OfflineKyc signature="zz" data="x"></OfflineKyc>`)))
	})

	t.Run("missing document is not attempted", func(t *testing.T) {
		assert.Equal(t, ResultNotAttempted, verifier.Verify(nil))
	})

	t.Run("missing issuer key is not attempted", func(t *testing.T) {
		keyless, err := New(nil, nil)
		require.NoError(t, err)
		doc := signedContainer(t, key, "uid=999941057058")
		assert.Equal(t, ResultNotAttempted, keyless.Verify(doc))
	})

	t.Run("garbage key material errors at construction", func(t *testing.T) {
		_, err := New([]byte("not a pem"), nil)
		assert.Error(t, err)
	})
}
