package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrentPrefersLinkerVersion(t *testing.T) {
	previous := Version
	t.Cleanup(func() { Version = previous })

	Version = " v1.4.0 "
	assert.Equal(t, "v1.4.0", Current())

	Version = "dev"
	assert.NotEmpty(t, Current())
}
