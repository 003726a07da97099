package fetch

import (
	"testing"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewChromeRenderer(t *testing.T) {
	r := NewChromeRenderer(zerolog.Nop())
	assert.Equal(t, DefaultTimeout, r.Timeout)
	assert.Equal(t, 5*time.Second, r.Settle)
	assert.Empty(t, r.ExecPath)
}

func TestChromeRenderer_AllocatorOptions(t *testing.T) {
	base := len(chromedp.DefaultExecAllocatorOptions)

	r := NewChromeRenderer(zerolog.Nop())
	assert.Len(t, r.allocatorOptions(), base+4)

	r.ExecPath = "/usr/bin/chromium"
	assert.Len(t, r.allocatorOptions(), base+5)
	assert.Len(t, chromedp.DefaultExecAllocatorOptions, base, "defaults are not modified")
}
