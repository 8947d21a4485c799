package engagement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCount(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{1, "1"},
		{9, "9"},
		{999, "999"},
		{1000, "1k"},
		{1040, "1k"},
		{1100, "1.1k"},
		{1500, "1.5k"},
		{9999, "10k"},
		{15000, "15k"},
		{1200000, "1.2M"},
		{2500000000, "2.5B"},
		{1000000000000, "1T"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, FormatCount(c.n), "n=%d", c.n)
	}
}

func TestFormatEngagement(t *testing.T) {
	assert.Equal(t, "0 likes", FormatEngagement(0, "like"))
	assert.Equal(t, "1 like", FormatEngagement(1, "like"))
	assert.Equal(t, "2 likes", FormatEngagement(2, "like"))
	assert.Equal(t, "1.5k likes", FormatEngagement(1500, "like"))
	assert.Equal(t, "1 save", FormatEngagement(1, "save"))
	assert.Equal(t, "0 saves", FormatEngagement(0, "save"))
}
