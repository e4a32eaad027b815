package httpcrypt

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Header is a single inner-message header. Header order is authenticated
// as part of the envelope, so both ends must serialize the sequence
// identically; callers supply headers as an ordered slice, never a map.
type Header struct {
	Name  string
	Value string
}

// BuildRequest builds the plaintext container sealed into an envelope: a
// pseudo-HTTP message of the form
//
//	METHOD path HTTP/1.1\n
//	Name:Value\n
//	...
//	\n
//	body
//
// Lines are LF-separated with no carriage returns, and the body is
// appended verbatim with no length prefix; framing relies solely on the
// blank-line separator and the total buffer length. Header values are
// written as-is: embedded control characters are not rejected, because
// the daemon's treatment of them is unspecified.
func BuildRequest(method, path string, headers []Header, body []byte) []byte {
	size := len(method) + 1 + len(path) + len(" HTTP/1.1\n") + 1 + len(body)
	for _, h := range headers {
		size += len(h.Name) + 1 + len(h.Value) + 1
	}

	var buf bytes.Buffer
	buf.Grow(size)
	buf.WriteString(method)
	buf.WriteByte(' ')
	buf.WriteString(path)
	buf.WriteString(" HTTP/1.1\n")
	for _, h := range headers {
		buf.WriteString(h.Name)
		buf.WriteByte(':')
		buf.WriteString(h.Value)
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(body)
	return buf.Bytes()
}

// Response is a decrypted inner reply with the body left in place:
// callers slice the decrypted buffer at BodyOffset.
type Response struct {
	// StatusLine is the raw first line, e.g. "HTTP/1.1 200 OK".
	StatusLine string
	// Code is the numeric status parsed from the status line.
	Code int
	// Headers are the reply headers in wire order.
	Headers []Header
	// BodyOffset is the byte offset immediately past the blank-line
	// terminator.
	BodyOffset int
}

// Header returns the value of the first header with the given name,
// matched case-insensitively.
func (r *Response) Header(name string) (string, bool) {
	for _, h := range r.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}
	return "", false
}

// ParseResponse parses a decrypted reply: a status line, at most 64
// header lines, a blank-line terminator, and the body. The parser is
// permissive about whitespace but fails closed: more than 64 headers, a
// line without a colon, non-UTF-8 header bytes, or a missing terminator
// all yield ErrFraming without a partial result.
func ParseResponse(data []byte) (*Response, error) {
	line, rest, err := nextLine(data)
	if err != nil {
		return nil, fmt.Errorf("%w: missing status line", ErrFraming)
	}
	if !utf8.Valid(line) {
		return nil, fmt.Errorf("%w: status line is not valid UTF-8", ErrFraming)
	}

	resp := &Response{StatusLine: string(line)}
	fields := strings.Fields(resp.StatusLine)
	if len(fields) < 2 || !strings.HasPrefix(fields[0], "HTTP/") {
		return nil, fmt.Errorf("%w: bad status line %q", ErrFraming, resp.StatusLine)
	}
	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: bad status code %q", ErrFraming, fields[1])
	}
	resp.Code = code

	offset := len(data) - len(rest)
	for {
		line, next, err := nextLine(rest)
		if err != nil {
			return nil, fmt.Errorf("%w: missing blank-line terminator", ErrFraming)
		}
		offset += len(rest) - len(next)
		rest = next

		if len(line) == 0 {
			resp.BodyOffset = offset
			return resp, nil
		}
		if len(resp.Headers) == maxHeaders {
			return nil, fmt.Errorf("%w: more than %d headers", ErrFraming, maxHeaders)
		}
		if !utf8.Valid(line) {
			return nil, fmt.Errorf("%w: header is not valid UTF-8", ErrFraming)
		}

		name, value, ok := strings.Cut(string(line), ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: bad header line %q", ErrFraming, line)
		}
		resp.Headers = append(resp.Headers, Header{
			Name:  strings.TrimSpace(name),
			Value: strings.TrimSpace(value),
		})
	}
}

// nextLine splits off the next LF-terminated line, tolerating an optional
// trailing CR. It fails if no LF remains.
func nextLine(data []byte) (line, rest []byte, err error) {
	i := bytes.IndexByte(data, '\n')
	if i < 0 {
		return nil, nil, ErrFraming
	}
	line = data[:i]
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	return line, data[i+1:], nil
}
