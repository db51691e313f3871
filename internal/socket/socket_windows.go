//go:build windows

package socket

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/windows"
)

// setSocketOptions sets SO_REUSEADDR only: Windows has no SO_REUSEPORT, and
// golang.org/x/sys/windows does not define the constant. Windows'
// SO_REUSEADDR already permits multiple binds to the same port, which is
// all this platform needs. network is "udp6" when the
// v6-only flag must also be set.
func setSocketOptions(network string, fd uintptr) error {
	if err := windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_REUSEADDR, 1); err != nil {
		return fmt.Errorf("set SO_REUSEADDR: %w", err)
	}

	if network == "udp6" {
		if err := windows.SetsockoptInt(windows.Handle(fd), windows.IPPROTO_IPV6, windows.IPV6_V6ONLY, 1); err != nil {
			return fmt.Errorf("set IPV6_V6ONLY: %w", err)
		}
	}

	return nil
}

func platformControl(network, _ string, c syscall.RawConn) error {
	var sockoptErr error
	if err := c.Control(func(fd uintptr) {
		sockoptErr = setSocketOptions(network, fd)
	}); err != nil {
		return fmt.Errorf("raw conn control: %w", err)
	}
	return sockoptErr
}
