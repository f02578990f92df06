package producer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	for _, k := range Kinds() {
		assert.True(t, k.Valid(), k.String())
		assert.NotEqual(t, "unknown", k.String())
	}

	assert.False(t, Kind(9).Valid())
	assert.False(t, Kind(-1).Valid())
	assert.Equal(t, "unknown", Kind(9).String())
}
