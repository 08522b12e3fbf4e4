package client

import (
	"context"
	"crypto/x509"
	"errors"
	"net"
	"strings"
	"syscall"
)

// Diagnose turns a transport failure into a short actionable hint for logs
// and detail views. It returns "" for nil.
func Diagnose(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.Canceled) {
		return "Request cancelled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "Request timeout - check server.url or increase server.timeout"
	}

	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return "TLS certificate signed by unknown authority - install the CA or set server.insecure_skip_verify"
	}
	var hostname x509.HostnameError
	if errors.As(err, &hostname) {
		return "TLS hostname mismatch - certificate doesn't match the server host"
	}
	var invalid x509.CertificateInvalidError
	if errors.As(err, &invalid) {
		return "TLS certificate is invalid: " + invalid.Error()
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "DNS resolution failed - verify the server hostname"
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return "Connection refused - check that the service is running and the port is correct"
	case errors.Is(err, syscall.ECONNRESET):
		return "Connection reset by server"
	case errors.Is(err, syscall.ENETUNREACH), errors.Is(err, syscall.EHOSTUNREACH):
		return "Network unreachable - check network connection and firewall settings"
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "Connection timeout - server took too long to respond"
	}

	return diagnoseMessage(err.Error())
}

// diagnoseMessage falls back to matching the error text
func diagnoseMessage(msg string) string {
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "proxy"):
		return "Proxy connection failed - check HTTP_PROXY / HTTPS_PROXY"
	case strings.Contains(lower, "no such host"):
		return "DNS resolution failed - verify the server hostname"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused - check that the service is running and the port is correct"
	case strings.Contains(lower, "tls"), strings.Contains(lower, "x509"), strings.Contains(lower, "certificate"):
		return "TLS error - check certificate configuration: " + msg
	case strings.Contains(lower, "unsupported protocol"):
		return "Invalid server URL - use http:// or https://"
	case strings.Contains(lower, "eof"):
		return "Connection closed unexpectedly"
	case strings.Contains(lower, "timeout"), strings.Contains(lower, "timed out"):
		return "Connection timeout - server took too long to respond"
	}

	return "Request failed: " + msg
}
