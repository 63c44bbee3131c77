package dialogue_test

import (
	"strings"
	"testing"

	"github.com/aretw0/airdesk/pkg/dialogue"
	"github.com/stretchr/testify/assert"
)

func TestDerivePNR(t *testing.T) {
	a := dialogue.DerivePNR("session-a")
	b := dialogue.DerivePNR("session-b")

	assert.Len(t, a, dialogue.PNRLength)
	assert.Equal(t, a, dialogue.DerivePNR("session-a"), "stable for the same session")
	assert.NotEqual(t, a, b)
	for _, code := range []string{a, b, dialogue.DerivePNR("")} {
		assert.False(t, strings.ContainsAny(code, "IO01"), "ambiguous characters in %s", code)
		assert.Equal(t, strings.ToUpper(code), code)
	}
}
