package discovery

import (
	"log"
	"net"

	internaldiscovery "github.com/nyxsd/dnssd/internal/discovery"
)

// Option configures a Facade at construction time, following the
// functional-options pattern.
type Option func(*Facade) error

// WithLogger sets the logger the Sender and Receiver use to report
// transient I/O and parse faults. Defaults to log.Default().
func WithLogger(logger *log.Logger) Option {
	return func(f *Facade) error {
		if logger == nil {
			logger = log.Default()
		}
		f.logger = logger
		return nil
	}
}

// WithInterfaces restricts which network interfaces join multicast,
// overriding the smart VPN/container-bridge-excluding default. For IPv4
// every listed interface joins the group and outgoing queries are not pinned
// to any of them; for IPv6 only the first entry joins, and outgoing queries
// are pinned to it.
func WithInterfaces(ifaces []net.Interface) Option {
	return func(f *Facade) error {
		f.ifaces = ifaces
		return nil
	}
}

// WithReceiveBufferSize overrides the Receiver's datagram buffer size. This
// exists only for test injection: production callers should leave it at the
// 4096-byte default.
func WithReceiveBufferSize(size int) Option {
	return func(f *Facade) error {
		if size <= 0 {
			size = internaldiscovery.DefaultReceiveBufferSize
		}
		f.recvBufSize = size
		return nil
	}
}
