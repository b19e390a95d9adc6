package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetID(t *testing.T) {
	t.Setenv("DYNO", "")
	t.Setenv("INSTANCE_ID", "")
	assert.Equal(t, "local", GetID())

	t.Setenv("INSTANCE_ID", "api-2")
	assert.Equal(t, "api-2", GetID())

	t.Setenv("DYNO", "web.1")
	assert.Equal(t, "web.1", GetID())
}
