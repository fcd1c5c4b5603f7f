package document

import "strings"

// ContainsNumber reports whether the ID number appears literally in the
// OCR-extracted text. Extracted text arrives lower-cased, so the target is
// lowered too before matching. OCR noise makes false negatives routine; a
// failed cross-check is the absence of a bonus signal, not evidence of
// fraud.
func ContainsNumber(text, number string) bool {
	if text == "" || number == "" {
		return false
	}
	return strings.Contains(text, strings.ToLower(number))
}
