package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/archive-alert/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityLog_Append(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output", "archive_log_file.txt")
	log := NewActivityLog(path)
	ctx := context.Background()

	require.NoError(t, log.Append(ctx, domain.LogEntry{Date: "2024-05-17", AOIName: "aoi_europe", Time: "09:00:00 AM", Count: 5}))
	require.NoError(t, log.Append(ctx, domain.LogEntry{Date: "2024-05-17", AOIName: "aoi_europe", Time: "10:00:00 AM", Count: 8}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"2024-05-17,aoi_europe,09:00:00 AM,5\n2024-05-17,aoi_europe,10:00:00 AM,8\n",
		string(data))
}
