package recorder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRecorder_Logs(t *testing.T) {
	r := openTemp(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	code := 503

	for i, msg := range []string{"first", "second", "third"} {
		e := &LogEntry{CreatedUTC: base.Add(time.Duration(i) * time.Minute), Level: "info", Message: msg}
		if msg == "second" {
			e.Level, e.Source, e.ErrorCode, e.Tags = "error", "client", &code, "net,retry"
			e.RequestID = "5f0c6f0e-7c1d-4f5e-9a49-2f1f3e8d6b11"
		}
		id, err := r.InsertLog(e)
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), id)
		assert.Equal(t, id, e.ID)
	}

	logs, err := r.RecentLogs(2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "third", logs[0].Message)
	assert.Equal(t, base.Add(2*time.Minute), logs[0].CreatedUTC)
	assert.Nil(t, logs[0].ErrorCode)
	assert.Empty(t, logs[0].Source)

	second := logs[1]
	assert.Equal(t, "second", second.Message)
	assert.Equal(t, "error", second.Level)
	assert.Equal(t, "client", second.Source)
	assert.Equal(t, "net,retry", second.Tags)
	require.NotNil(t, second.ErrorCode)
	assert.Equal(t, 503, *second.ErrorCode)
	assert.Equal(t, "5f0c6f0e-7c1d-4f5e-9a49-2f1f3e8d6b11", second.RequestID)
}

func TestSQLiteRecorder_LogsDefaultTimestamp(t *testing.T) {
	r := openTemp(t)
	before := time.Now().UTC().Truncate(time.Millisecond)
	e := &LogEntry{Level: "warn", Message: "no time"}
	_, err := r.InsertLog(e)
	require.NoError(t, err)
	assert.False(t, e.CreatedUTC.Before(before))

	logs, err := r.RecentLogs(100)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, e.CreatedUTC.Truncate(time.Millisecond), logs[0].CreatedUTC)
}

func TestSQLiteRecorder_RecentLogsEmpty(t *testing.T) {
	logs, err := openTemp(t).RecentLogs(10)
	require.NoError(t, err)
	assert.NotNil(t, logs)
	assert.Empty(t, logs)
}
