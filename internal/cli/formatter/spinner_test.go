package formatter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpinner_DrawsAndClears(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "Generating plot draft...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()
	s.Stop()

	out := buf.String()
	assert.Contains(t, out, "Generating plot draft...")
	assert.True(t, strings.HasSuffix(out, "\r\033[K"), "line is cleared on stop")
}

func TestStartSpinner_StopImmediately(t *testing.T) {
	var buf bytes.Buffer
	stop := StartSpinner(&buf, "x")
	stop()
	assert.Equal(t, "\r\033[K", buf.String())
}
