package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/studiowebux/redactcli/internal/config"
)

// ErrNoInput is returned when neither a file, content nor piped stdin is given
var ErrNoInput = errors.New("no input provided: use --file, --content, or pipe to stdin")

// ReadInput reads input with priority file > content > stdin.
// A nil stdin means stdin is not available.
func ReadInput(file, content string, stdin io.Reader) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read file %s: %w", file, err)
		}
		return string(data), nil
	}

	if content != "" {
		return content, nil
	}

	if stdin == nil {
		return "", ErrNoInput
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read from stdin: %w", err)
	}
	if len(data) == 0 {
		return "", ErrNoInput
	}
	return string(data), nil
}

// WriteOutput writes content to w unless noPrint, and to outputFile if set
func WriteOutput(w io.Writer, content string, noPrint bool, outputFile string) error {
	if !noPrint {
		fmt.Fprintln(w, content)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(content), config.FilePermissions); err != nil {
			return fmt.Errorf("failed to write output to %s: %w", outputFile, err)
		}
	}
	return nil
}

// stdin returns the input stream unless it is an interactive terminal,
// in which case reading it would block waiting for the user.
func (a *App) stdin() io.Reader {
	if a.streams.In == nil || isTerminal(a.streams.In) {
		return nil
	}
	return a.streams.In
}
