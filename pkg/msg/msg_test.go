package msg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "messages")
	if err != nil {
		panic(err)
	}

	path := filepath.Join(dir, "messages.yml")
	content := "greet:\n  hello: \"Hello {0}, you have {1} alerts\"\nfail: \"Failed after {0}: {1}\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		panic(err)
	}
	if err := Init(path); err != nil {
		panic(err)
	}

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestGetMessageReplacesPlaceholders(t *testing.T) {
	message := GetMessage("greet.hello", "Aina", 3)

	assert.Equal(t, "Hello Aina, you have 3 alerts", message)
}

func TestGetMessageWithErrorAndDuration(t *testing.T) {
	message := GetMessage("fail", 150*time.Millisecond, errors.New("connection reset"))

	assert.Equal(t, "Failed after 150ms: connection reset", message)
}

func TestGetMessageMissingKey(t *testing.T) {
	message := GetMessage("nope.missing")

	require.Contains(t, message, "Message not found")
	assert.Contains(t, message, "nope.missing")
}
