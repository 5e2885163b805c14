package lsp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// maxFrameSize caps a single JSON-RPC payload. Code action requests carry a
// handful of diagnostics, so anything near this is a broken client.
const maxFrameSize = 16 << 20

var errMissingContentLength = errors.New("missing Content-Length header")

// readMessage reads one Content-Length framed payload.
func readMessage(r *bufio.Reader) ([]byte, error) {
	size, err := readHeaders(r)
	if err != nil {
		return nil, err
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// readHeaders consumes the header block up to the blank line and returns the
// announced payload size. Headers other than Content-Length are skipped.
func readHeaders(r *bufio.Reader) (int, error) {
	size := -1
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return 0, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			continue
		}
		if size, err = parseContentLength(strings.TrimSpace(value)); err != nil {
			return 0, err
		}
	}
	if size < 0 {
		return 0, errMissingContentLength
	}
	return size, nil
}

func parseContentLength(value string) (int, error) {
	length, err := strconv.ParseInt(value, 10, 64)
	if err != nil || length < 0 {
		return 0, fmt.Errorf("invalid Content-Length %q", value)
	}
	if length > maxFrameSize {
		return 0, fmt.Errorf("Content-Length %d exceeds %d bytes", length, maxFrameSize)
	}
	return safecast.Conv[int](length)
}

// writeMessage frames payload with a Content-Length header.
func writeMessage(w io.Writer, payload []byte) error {
	if _, err := fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(payload)); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}
