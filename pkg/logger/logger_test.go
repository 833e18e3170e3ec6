package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerboseLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, true)

	log.Infof("Target: %s", "/src/github.com/org/repo")
	log.Debugw("Cloning", "url", "git@github.com:org/repo.git")

	out := buf.String()
	assert.Contains(t, out, "INFO Target: /src/github.com/org/repo")
	assert.Contains(t, out, "DEBUG Cloning")
	assert.Contains(t, out, `"url": "git@github.com:org/repo.git"`)
}

func TestQuietLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, false)

	log.Infof("Target: %s", "/src/github.com/org/repo")
	log.Errorf("Invalid git url")

	assert.Empty(t, buf.String())
}
