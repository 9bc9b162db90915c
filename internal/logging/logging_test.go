package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

func TestOpenLogFile_Empty(t *testing.T) {
	file, err := OpenLogFile("")
	require.NoError(t, err)
	assert.Nil(t, file)
	assert.Same(t, zap.L(), TeeToFile(zap.L(), nil, true))
}

func TestTeeToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "companion.log")
	file, err := OpenLogFile(path)
	require.NoError(t, err)

	logger := TeeToFile(zap.NewNop(), file, false)
	logger.Debug("hidden")
	logger.Info("cart refreshed", zap.Int("stores", 2))
	require.NoError(t, file.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, "cart refreshed", gjson.Get(lines[0], "msg").String())
	assert.Equal(t, int64(2), gjson.Get(lines[0], "stores").Int())
}
