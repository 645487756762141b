package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "dash:admin", Key("dash", "admin"))
	assert.Equal(t, "dash:admin", Key("dash:", "", " admin"))
	assert.Equal(t, "", Key())
}
