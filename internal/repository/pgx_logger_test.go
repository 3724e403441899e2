package repository

import (
	"bytes"
	"context"
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestPgxLogger_PromotesQueryFields(t *testing.T) {
	var buf bytes.Buffer
	l := newPgxLogger(zerolog.New(&buf))

	l.Log(context.Background(), tracelog.LogLevelInfo, "Query", map[string]any{
		"sql":  "SELECT age FROM user_data ORDER BY id",
		"args": []any{10, 0},
		"time": "1ms",
	})

	out := buf.String()
	assert.Contains(t, out, `"component":"pgx"`)
	assert.Contains(t, out, `"sql":"SELECT age FROM user_data ORDER BY id"`)
	assert.Contains(t, out, `"args":[10,0]`)
	assert.Contains(t, out, `"time":"1ms"`)
	assert.Contains(t, out, `"message":"Query"`)
}

func TestPgxLogger_LevelMapping(t *testing.T) {
	cases := []struct {
		level tracelog.LogLevel
		want  string
	}{
		{tracelog.LogLevelTrace, `"level":"trace"`},
		{tracelog.LogLevelDebug, `"level":"debug"`},
		{tracelog.LogLevelInfo, `"level":"info"`},
		{tracelog.LogLevelWarn, `"level":"warn"`},
		{tracelog.LogLevelError, `"level":"error"`},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			var buf bytes.Buffer
			l := newPgxLogger(zerolog.New(&buf))
			l.Log(context.Background(), tc.level, "msg", map[string]any{})
			assert.Contains(t, buf.String(), tc.want)
		})
	}
}

func TestPgxLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newPgxLogger(zerolog.New(&buf))

	l.Log(context.Background(), tracelog.LogLevel(42), "odd", map[string]any{})

	out := buf.String()
	assert.Contains(t, out, `"level":"info"`)
	assert.Contains(t, out, `"pgx_log_level"`)
}

func TestPgxLogger_NoneIsSilent(t *testing.T) {
	var buf bytes.Buffer
	l := newPgxLogger(zerolog.New(&buf))

	l.Log(context.Background(), tracelog.LogLevelNone, "ignored", map[string]any{"sql": "SELECT 1"})
	assert.Empty(t, buf.String())
}
