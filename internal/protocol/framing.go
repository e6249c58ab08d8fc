package protocol

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const contentLengthHeader = "Content-Length"

// FrameError reports a malformed or truncated frame. The stream cannot be
// resynchronised after one, so callers stop reading.
type FrameError struct {
	Reason string
	Err    error
}

func (e *FrameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *FrameError) Unwrap() error { return e.Err }

// ReadMessage reads one Content-Length framed JSON body. It returns io.EOF
// when the stream closes cleanly before a new frame starts.
func ReadMessage(r *bufio.Reader) (json.RawMessage, error) {
	contentLength := -1
	sawHeader := false

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				if !sawHeader && line == "" {
					return nil, io.EOF
				}
				return nil, &FrameError{Reason: "EOF while reading headers"}
			}
			return nil, &FrameError{Reason: "read header", Err: err}
		}
		sawHeader = true

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(name), contentLengthHeader) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, &FrameError{Reason: "invalid Content-Length header", Err: err}
		}
		if n < 0 {
			return nil, &FrameError{Reason: fmt.Sprintf("negative Content-Length: %d", n)}
		}
		contentLength = n
	}

	if contentLength < 0 {
		return nil, &FrameError{Reason: "missing Content-Length header"}
	}

	// The buffer grows only with bytes actually received.
	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, r, int64(contentLength)); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, &FrameError{Reason: "read body", Err: err}
	}
	body := buf.Bytes()
	if !json.Valid(body) {
		return nil, &FrameError{Reason: "invalid JSON body"}
	}
	return body, nil
}

type flusher interface {
	Flush() error
}

// WriteMessage encodes v as JSON and writes it with a Content-Length header,
// flushing w when it buffers.
func WriteMessage(w io.Writer, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	header := fmt.Sprintf("%s: %d\r\n\r\n", contentLengthHeader, len(body))
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	if f, ok := w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}
	}
	return nil
}
