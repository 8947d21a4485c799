package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "0B", humanSize(0))
	assert.Equal(t, "512B", humanSize(512))
	assert.Equal(t, "1023B", humanSize(1023))
	assert.Equal(t, "1.00KB", humanSize(1024))
	assert.Equal(t, "1.50KB", humanSize(1536))
	assert.Equal(t, "1023.50KB", humanSize(1024*1024-512))
	assert.Equal(t, "1.00MB", humanSize(1024*1024))
	assert.Equal(t, "2.25MB", humanSize(2*1024*1024+256*1024))
}
