package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"testing"
)

func TestDiagnose(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil",
			err:  nil,
			want: "",
		},
		{
			name: "cancelled",
			err:  fmt.Errorf("%w: %w", ErrTransport, context.Canceled),
			want: "Request cancelled",
		},
		{
			name: "deadline",
			err:  fmt.Errorf("%w: %w", ErrTransport, context.DeadlineExceeded),
			want: "Request timeout - check server.url or increase server.timeout",
		},
		{
			name: "connection refused errno",
			err: fmt.Errorf("%w: %w", ErrTransport, &net.OpError{
				Op:  "dial",
				Net: "tcp",
				Err: os.NewSyscallError("connect", syscall.ECONNREFUSED),
			}),
			want: "Connection refused - check that the service is running and the port is correct",
		},
		{
			name: "dns",
			err:  fmt.Errorf("%w: %w", ErrTransport, &net.DNSError{Err: "no such host", Name: "nope.invalid"}),
			want: "DNS resolution failed - verify the server hostname",
		},
		{
			name: "text fallback",
			err:  errors.New("proxyconnect tcp: dial failed"),
			want: "Proxy connection failed - check HTTP_PROXY / HTTPS_PROXY",
		},
		{
			name: "unknown",
			err:  errors.New("something odd"),
			want: "Request failed: something odd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Diagnose(tt.err); got != tt.want {
				t.Errorf("Diagnose() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiagnose_ClosedServer(t *testing.T) {
	c, err := New(Options{BaseURL: "http://127.0.0.1:1"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = c.Do(context.Background(), "GET", ConfigPath, nil)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if got := Diagnose(err); got == "" {
		t.Error("expected a hint for a refused connection")
	}
}
