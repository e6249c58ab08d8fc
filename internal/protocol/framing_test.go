package protocol

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(body string) string {
	return fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(body), body)
}

func reader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestReadMessage(t *testing.T) {
	t.Parallel()

	t.Run("single frame", func(t *testing.T) {
		msg, err := ReadMessage(reader(frame(`{"id":1,"method":"ping"}`)))
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":1,"method":"ping"}`, string(msg))
	})

	t.Run("header name is case insensitive and extra headers are ignored", func(t *testing.T) {
		body := `{"a":true}`
		input := fmt.Sprintf("Content-Type: application/json\r\ncontent-length: %d\r\n\r\n%s", len(body), body)
		msg, err := ReadMessage(reader(input))
		require.NoError(t, err)
		assert.JSONEq(t, body, string(msg))
	})

	t.Run("bare newlines", func(t *testing.T) {
		body := `[1,2]`
		msg, err := ReadMessage(reader(fmt.Sprintf("CONTENT-LENGTH: %d\n\n%s", len(body), body)))
		require.NoError(t, err)
		assert.Equal(t, body, string(msg))
	})

	t.Run("consecutive frames", func(t *testing.T) {
		r := reader(frame(`{"id":1}`) + frame(`{"id":2}`))
		first, err := ReadMessage(r)
		require.NoError(t, err)
		second, err := ReadMessage(r)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":1}`, string(first))
		assert.JSONEq(t, `{"id":2}`, string(second))

		_, err = ReadMessage(r)
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("empty stream is a clean end", func(t *testing.T) {
		_, err := ReadMessage(reader(""))
		assert.ErrorIs(t, err, io.EOF)
		var frameErr *FrameError
		assert.False(t, errors.As(err, &frameErr))
	})
}

func TestReadMessageFrameErrors(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"eof mid headers":     "Content-Length: 10\r\n",
		"eof in partial line": "Content-Len",
		"eof mid body":        "Content-Length: 10\r\n\r\n{\"a\":",
		"missing length":      "Content-Type: application/json\r\n\r\n{}",
		"unparsable length":   "Content-Length: ten\r\n\r\n{}",
		"negative length":     "Content-Length: -1\r\n\r\n{}",
		"oversized length":    "Content-Length: 9223372036854775807\r\n\r\n{}",
		"length past int64":   "Content-Length: 99999999999999999999\r\n\r\n{}",
		"invalid json":        frame(`{"a":`),
		"empty body":          "Content-Length: 0\r\n\r\n",
		"blank line first":    "\r\n{}",
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadMessage(reader(input))
			require.Error(t, err)
			var frameErr *FrameError
			assert.True(t, errors.As(err, &frameErr), "expected FrameError, got %T: %v", err, err)
		})
	}
}

type flushRecorder struct {
	bytes.Buffer
	flushed int
}

func (f *flushRecorder) Flush() error {
	f.flushed++
	return nil
}

func TestWriteMessage(t *testing.T) {
	t.Parallel()

	var out flushRecorder
	resp := Success(json.RawMessage(`7`), map[string]any{})
	require.NoError(t, WriteMessage(&out, resp))
	assert.Equal(t, 1, out.flushed)

	body := `{"jsonrpc":"2.0","id":7,"result":{}}`
	assert.Equal(t, frame(body), out.String())

	msg, err := ReadMessage(bufio.NewReader(&out.Buffer))
	require.NoError(t, err)
	assert.JSONEq(t, body, string(msg))
}

func TestParseRequest(t *testing.T) {
	t.Parallel()

	req, ok := ParseRequest(json.RawMessage(`{"jsonrpc":"2.0","id":"a","method":"tools/list","params":{"x":1}}`))
	require.True(t, ok)
	assert.True(t, req.HasID)
	assert.Equal(t, `"a"`, string(req.ID))
	assert.Equal(t, "tools/list", req.Method)
	assert.JSONEq(t, `{"x":1}`, string(req.Params))

	req, ok = ParseRequest(json.RawMessage(`{"id":null,"method":"ping"}`))
	require.True(t, ok)
	assert.True(t, req.HasID)
	assert.Equal(t, "null", string(req.ID))

	req, ok = ParseRequest(json.RawMessage(`{"method":"notifications/initialized"}`))
	require.True(t, ok)
	assert.False(t, req.HasID)

	for _, body := range []string{`[]`, `null`, `{"id":1}`, `{"id":1,"method":3}`, `{"id":1,"method":null}`} {
		_, ok := ParseRequest(json.RawMessage(body))
		assert.False(t, ok, body)
	}
}

func TestFailureResponseShape(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Failure(json.RawMessage(`3`), CodeMethodNotFound, "Method not found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":3,"error":{"code":-32601,"message":"Method not found"}}`, string(data))
}
