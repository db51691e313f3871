//go:build linux

package socket

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

// setSocketOptions sets SO_REUSEADDR and, on Linux 3.9+, SO_REUSEPORT so
// this socket can coexist with Avahi/systemd-resolved already bound to
// 5353. network is "udp6" when the v6-only flag must also be set.
func setSocketOptions(network string, fd uintptr) error {
	if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		return fmt.Errorf("set SO_REUSEADDR: %w", err)
	}

	if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1); err != nil {
		if err != unix.ENOPROTOOPT {
			return fmt.Errorf("set SO_REUSEPORT: %w", err)
		}
	}

	if network == "udp6" {
		if err := unix.SetsockoptInt(int(fd), unix.IPPROTO_IPV6, unix.IPV6_V6ONLY, 1); err != nil {
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
