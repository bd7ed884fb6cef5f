package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yultimate_hub/internal/config"
)

func TestSetupWritesToRotatingFile(t *testing.T) {
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{})
		logrus.SetLevel(logrus.InfoLevel)
	})

	path := filepath.Join(t.TempDir(), "logs", "app.log")
	Setup(config.LogConfig{File: path, Level: "info", Format: "json"})

	logrus.WithField("person_id", 7).Info("approval completed")
	logrus.Debug("hidden at info level")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"approval completed"`)
	assert.Contains(t, string(data), `"person_id":7`)
	assert.NotContains(t, string(data), "hidden at info level")
}

func TestSetupFallsBackToDebugOnBadLevel(t *testing.T) {
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.InfoLevel)
	})

	Setup(config.LogConfig{File: filepath.Join(t.TempDir(), "app.log"), Level: "loud"})

	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.NotNil(t, GormLogger())
}
