// Package identity validates the two national ID numbers attached to a
// claim: the 12-digit Aadhaar number (format + Verhoeff checksum) and the
// PAN (format only). Both validators are pure functions and never error;
// any malformed input is simply invalid.
package identity

import "regexp"

var (
	aadhaarPattern = regexp.MustCompile(`^\d{12}$`)
	panPattern     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
)

// Verhoeff lookup tables. d is the dihedral group D5 multiplication table,
// p the positional permutation table applied cyclically with period 8.
var verhoeffD = [10][10]int{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	{1, 2, 3, 4, 0, 6, 7, 8, 9, 5},
	{2, 3, 4, 0, 1, 7, 8, 9, 5, 6},
	{3, 4, 0, 1, 2, 8, 9, 5, 6, 7},
	{4, 0, 1, 2, 3, 9, 5, 6, 7, 8},
	{5, 9, 8, 7, 6, 0, 4, 3, 2, 1},
	{6, 5, 9, 8, 7, 1, 0, 4, 3, 2},
	{7, 6, 5, 9, 8, 2, 1, 0, 4, 3},
	{8, 7, 6, 5, 9, 3, 2, 1, 0, 4},
	{9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
}

var verhoeffP = [8][10]int{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	{1, 5, 7, 6, 2, 8, 3, 0, 9, 4},
	{5, 8, 0, 3, 7, 9, 6, 1, 4, 2},
	{8, 9, 1, 6, 0, 4, 3, 5, 2, 7},
	{9, 4, 5, 3, 1, 2, 6, 8, 7, 0},
	{4, 2, 8, 6, 5, 7, 3, 9, 0, 1},
	{2, 7, 9, 3, 8, 0, 6, 4, 1, 5},
	{7, 0, 4, 6, 9, 1, 3, 2, 5, 8},
}

// verhoeffChecksum reports whether the digit string (including its trailing
// check digit) passes the Verhoeff check. Digits are consumed right to left.
func verhoeffChecksum(num string) bool {
	c := 0
	for i := 0; i < len(num); i++ {
		digit := int(num[len(num)-1-i] - '0')
		c = verhoeffD[c][verhoeffP[i%8][digit]]
	}
	return c == 0
}

// VerhoeffCheckDigit computes the check digit that makes payload+digit pass
// verhoeffChecksum. Used by callers that need to construct valid numbers,
// primarily tests. payload must be decimal digits only.
func VerhoeffCheckDigit(payload string) int {
	c := 0
	for i := 0; i < len(payload); i++ {
		digit := int(payload[len(payload)-1-i] - '0')
		c = verhoeffD[c][verhoeffP[(i+1)%8][digit]]
	}
	// inverse of c in D5
	inv := [10]int{0, 4, 3, 2, 1, 5, 6, 7, 8, 9}
	return inv[c]
}

// ValidateAadhaar reports whether the number is a structurally valid Aadhaar:
// exactly 12 decimal digits with a passing Verhoeff checksum.
func ValidateAadhaar(number string) bool {
	return aadhaarPattern.MatchString(number) && verhoeffChecksum(number)
}

// ValidatePAN reports whether the number matches the PAN layout of five
// uppercase letters, four digits, and one uppercase letter. The embedded
// semantics (holder category, name initial) are not checked.
func ValidatePAN(number string) bool {
	return panPattern.MatchString(number)
}
