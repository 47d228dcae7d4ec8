package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZerologAdapter(t *testing.T) {
	t.Parallel()

	t.Run("verbose logs debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		logger := &zerologAdapter{logger: newLogger(&buf, true)}
		logger.Debug("HTTP Request", map[string]interface{}{"method": "GET"})

		assert.Contains(t, buf.String(), "HTTP Request")
		assert.Contains(t, buf.String(), "GET")
	})

	t.Run("quiet drops debug but keeps warnings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		logger := &zerologAdapter{logger: newLogger(&buf, false)}
		logger.Debug("HTTP Request", nil)
		logger.Info("client created", nil)
		assert.Empty(t, buf.String())

		logger.Warn("API Problem Response", map[string]interface{}{"status_code": 404})
		assert.Contains(t, buf.String(), "API Problem Response")
	})
}
