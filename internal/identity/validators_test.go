package identity

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAadhaar(t *testing.T) {
	t.Run("accepts number with computed check digit", func(t *testing.T) {
		payload := "23412341234"
		number := fmt.Sprintf("%s%d", payload, VerhoeffCheckDigit(payload))
		require.Len(t, number, 12)
		assert.True(t, ValidateAadhaar(number))
	})

	t.Run("rejects single digit mutation", func(t *testing.T) {
		payload := "23412341234"
		number := fmt.Sprintf("%s%d", payload, VerhoeffCheckDigit(payload))
		for pos := 0; pos < len(number); pos++ {
			mutated := []byte(number)
			mutated[pos] = '0' + (mutated[pos]-'0'+1)%10
			assert.False(t, ValidateAadhaar(string(mutated)), "mutation at %d slipped through", pos)
		}
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		assert.False(t, ValidateAadhaar("12345678901"))
		assert.False(t, ValidateAadhaar("1234567890123"))
		assert.False(t, ValidateAadhaar(""))
	})

	t.Run("rejects non-digit characters", func(t *testing.T) {
		assert.False(t, ValidateAadhaar("1234a6789012"))
		assert.False(t, ValidateAadhaar("12345678901 "))
		assert.False(t, ValidateAadhaar("-23412341234"))
	})

	t.Run("check digits cover all residues", func(t *testing.T) {
		// Ten different payloads should not all map to the same check digit.
		seen := map[int]bool{}
		for i := 0; i < 10; i++ {
			seen[VerhoeffCheckDigit(fmt.Sprintf("2341234123%d", i))] = true
		}
		assert.Greater(t, len(seen), 1)
	})
}

func TestValidatePAN(t *testing.T) {
	valid := []string{"ABCDE1234F", "ZZZZZ9999Z", "PQRST0001A"}
	for _, number := range valid {
		assert.True(t, ValidatePAN(number), number)
	}

	invalid := []string{
		"",
		"ABCDE1234",   // too short
		"ABCDE1234FG", // too long
		"abcde1234f",  // lowercase
		"ABCD51234F",  // digit in letter block
		"ABCDE12E4F",  // letter in digit block
		"ABCDE12345",  // trailing digit
		"ABCDE 234F",  // whitespace
	}
	for _, number := range invalid {
		assert.False(t, ValidatePAN(number), number)
	}
}
