// Package source supplies the local input boundaries: file reads with
// binary and size checks, and command execution with captured output. Both
// hand the pipeline exactly one in-memory string; failures here are boundary
// errors, never pipeline errors.
package source

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"unicode/utf8"
)

// DefaultMaxBytes caps file and command output sizes when no limit is set.
const DefaultMaxBytes = 10 << 20

// binarySniffLen is how much of a file prefix is inspected for binary
// content.
const binarySniffLen = 8192

// ReadFile loads a local file after checking its size and sniffing for
// binary content. Binary or oversize files are refused.
func ReadFile(path string, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > maxBytes {
		return "", fmt.Errorf("%s exceeds size limit (%d > %d bytes)", path, info.Size(), maxBytes)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if looksBinary(b) {
		return "", fmt.Errorf("%s looks like a binary file", path)
	}
	return string(b), nil
}

// looksBinary reports whether the prefix contains a NUL byte or is not valid
// UTF-8. The sniff stops at a rune boundary so a multi-byte character split
// by the window is not misread.
func looksBinary(b []byte) bool {
	prefix := b
	if len(prefix) > binarySniffLen {
		prefix = prefix[:binarySniffLen]
		// drop up to three trailing bytes so a rune split by the window does
		// not read as invalid
		for i := 0; i < 3 && len(prefix) > 0 && !utf8.Valid(prefix); i++ {
			prefix = prefix[:len(prefix)-1]
		}
	}
	if bytes.IndexByte(prefix, 0) >= 0 {
		return true
	}
	return !utf8.Valid(prefix)
}

// RunCommand executes a command and captures its standard output for
// sanitization. Output beyond maxBytes is an error rather than a truncation,
// matching the file boundary.
func RunCommand(ctx context.Context, name string, args []string, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	cmd := exec.CommandContext(ctx, name, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = nil
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("run %s: %w", name, err)
	}
	if int64(out.Len()) > maxBytes {
		return "", fmt.Errorf("%s output exceeds size limit (%d > %d bytes)", name, out.Len(), maxBytes)
	}
	return out.String(), nil
}
