package engagement

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	t.Run("short story floors at the minimum length", func(t *testing.T) {
		// 100/1000*0.7 = 0.07 with no keywords
		assert.Equal(t, 0.07, Score("short"))
	})

	t.Run("long story caps at the maximum length", func(t *testing.T) {
		assert.Equal(t, 0.7, Score(strings.Repeat("a", 5000)))
	})

	t.Run("all keywords add the full keyword share", func(t *testing.T) {
		story := strings.Repeat("x", 1000) +
			" challenge achievement motivation impact community"
		assert.Equal(t, 1.0, Score(story))
	})

	t.Run("keywords match case insensitively", func(t *testing.T) {
		// 0.07 length floor + 0.3*(2/5) = 0.19
		assert.Equal(t, 0.19, Score("CHALLENGE and Impact"))
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		story := "a community project with real impact " + strings.Repeat("n", 300)
		assert.Equal(t, Score(story), Score(story))
	})
}
