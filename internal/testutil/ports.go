// Package testutil holds helpers shared by tests across the module.
package testutil

import (
	"net"
	"strconv"
	"sync"
	"testing"
)

var (
	portMu    sync.Mutex
	usedPorts = make(map[int]struct{})
)

// GetRandomPort asks the kernel for a free TCP port and never hands out the
// same port twice within one test binary.
func GetRandomPort(t *testing.T) int {
	t.Helper()
	portMu.Lock()
	defer portMu.Unlock()

	for {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatalf("failed to get random port: %v", err)
		}
		p := l.Addr().(*net.TCPAddr).Port
		if err := l.Close(); err != nil {
			t.Fatalf("failed to close listener: %v", err)
		}
		if _, taken := usedPorts[p]; taken {
			continue
		}
		usedPorts[p] = struct{}{}
		return p
	}
}

// GetRandomListeningAddr returns "127.0.0.1:<port>" for a fresh port.
func GetRandomListeningAddr(t *testing.T) string {
	t.Helper()
	return net.JoinHostPort("127.0.0.1", strconv.Itoa(GetRandomPort(t)))
}
