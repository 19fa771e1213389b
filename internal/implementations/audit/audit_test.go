package audit

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"remindbot/internal/core/domain/audit"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/user"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

var User = user.User{ID: 11, ChatID: 22, Username: "alice"}

func TestRecordWritesJSONLines(t *testing.T) {
	// Setup ---
	path := filepath.Join(t.TempDir(), "nested", "audit.log")
	auditor, err := Open(path, logging.NewFakeLogger(), &audit.FakeEventIDGenerator{})
	require.Nil(t, err)

	// Exercise ---
	auditor.Record(context.Background(), audit.NewEvent(audit.ActionCreateIn, User).With("rid", 5).With("minutes", 15))
	auditor.Record(context.Background(), audit.NewEvent(audit.ActionList, User).With("count", 0))
	require.Nil(t, auditor.Close())

	// Verify ---
	assert := require.New(t)
	file, err := os.Open(path)
	assert.Nil(err)
	defer file.Close()

	records := make([]map[string]interface{}, 0)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		record := make(map[string]interface{})
		assert.Nil(json.Unmarshal(scanner.Bytes(), &record))
		records = append(records, record)
	}
	assert.Len(records, 2)

	first := records[0]
	assert.Equal("event-1", first["event_id"])
	assert.Equal("create:reminder_in", first["action"])
	assert.Equal(float64(22), first["chat_id"])
	assert.Equal(float64(11), first["user_id"])
	assert.Equal(float64(5), first["rid"])
	assert.Equal(float64(15), first["minutes"])
	ts, err := time.Parse(time.RFC3339, first["ts"].(string))
	assert.Nil(err)
	assert.WithinDuration(time.Now(), ts, time.Minute)

	assert.Equal("event-2", records[1]["event_id"])
	assert.Equal(float64(0), records[1]["count"])
}

func TestRecordAppends(t *testing.T) {
	// Setup ---
	path := filepath.Join(t.TempDir(), "audit.log")
	for i := 0; i < 2; i++ {
		auditor, err := Open(path, logging.NewFakeLogger(), &audit.FakeEventIDGenerator{})
		require.Nil(t, err)

		// Exercise ---
		auditor.Record(context.Background(), audit.NewEvent(audit.ActionStart, User))
		require.Nil(t, auditor.Close())
	}

	// Verify ---
	content, err := os.ReadFile(path)
	require.Nil(t, err)
	require.Equal(t, 2, bytes.Count(content, []byte("\n")))
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("no space left on device")
}

func (failingWriter) Sync() error {
	return nil
}

func TestWriteFailureIsLogged(t *testing.T) {
	// Setup ---
	log := logging.NewFakeLogger()
	auditor := New(zapcore.WriteSyncer(failingWriter{}), log, &audit.FakeEventIDGenerator{})

	// Exercise ---
	auditor.Record(context.Background(), audit.NewEvent(audit.ActionStart, User))

	// Verify ---
	require.NotEmpty(t, log.Records(logging.ERROR))
}
