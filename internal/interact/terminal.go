package interact

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Terminal prompts on a line-oriented terminal.
// Passwords are read without echo when the input is a TTY.
type Terminal struct {
	in     *bufio.Reader
	out    io.Writer
	fd     int
	hasTTY bool
}

// NewTerminal creates a terminal interaction on stdin/stderr
func NewTerminal() *Terminal {
	fd := int(os.Stdin.Fd())
	return &Terminal{
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stderr,
		fd:     fd,
		hasTTY: term.IsTerminal(fd),
	}
}

// NewTerminalWith creates a terminal interaction on arbitrary streams (no TTY)
func NewTerminalWith(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:  bufio.NewReader(in),
		out: out,
		fd:  -1,
	}
}

// PromptCredential asks for a username then a password
func (t *Terminal) PromptCredential(ctx context.Context) (Credential, error) {
	if err := ctx.Err(); err != nil {
		return Credential{}, err
	}

	fmt.Fprint(t.out, "请输入用户名: ")
	username, err := t.readLine()
	if err != nil {
		return Credential{}, err
	}

	fmt.Fprint(t.out, "请输入密码: ")
	password, err := t.readPassword()
	if err != nil {
		return Credential{}, err
	}

	return Credential{Username: username, Password: password}, nil
}

// Notify prints the message; on a TTY it waits for Enter
func (t *Terminal) Notify(_ context.Context, message string) {
	fmt.Fprintln(t.out, message)
	if t.hasTTY {
		fmt.Fprint(t.out, "(press Enter to continue)")
		_, _ = t.in.ReadString('\n')
	}
}

func (t *Terminal) readLine() (string, error) {
	value, err := t.in.ReadString('\n')
	if err != nil && (err != io.EOF || value == "") {
		if err == io.EOF {
			return "", nil
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(value), nil
}

func (t *Terminal) readPassword() (string, error) {
	if !t.hasTTY {
		return t.readLine()
	}
	data, err := term.ReadPassword(t.fd)
	fmt.Fprintln(t.out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
