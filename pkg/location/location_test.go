package location_test

import (
	"testing"

	"github.com/aretw0/airdesk/pkg/location"
	"github.com/stretchr/testify/assert"
)

func TestNormalize_Aliases(t *testing.T) {
	n := location.New(nil)

	assert.Equal(t, "BLR", n.Normalize("Bengaluru"))
	assert.Equal(t, n.Normalize("Bengaluru"), n.Normalize("bangalore"))
	assert.Equal(t, "DEL", n.Normalize("  New   Delhi "))
	assert.Equal(t, "BOM", n.Normalize("BOMBAY"))
}

func TestNormalize_UnknownFallsBackToUppercase(t *testing.T) {
	n := location.New(nil)

	assert.Equal(t, "SHIMLA", n.Normalize("Shimla"))
	assert.Equal(t, "DXB", n.Normalize(" dxb "))
}

func TestNormalize_ExtraEntries(t *testing.T) {
	n := location.New(map[string]string{"Dubai": "dxb"})

	assert.Equal(t, "DXB", n.Normalize("dubai"))
	assert.Equal(t, "BLR", n.Normalize("bangalore"), "defaults are kept")
}
