package socket

import (
	"context"
	"fmt"
	"net"
	"runtime"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"

	"github.com/nyxsd/dnssd/internal/network"
)

// IPFamily selects which multicast group the socket layer joins and which
// address family resolution is filtered to. It is the single configuration
// option the Facade exposes at construction.
type IPFamily int

const (
	V4 IPFamily = iota
	V6
)

func (f IPFamily) String() string {
	if f == V6 {
		return "V6"
	}
	return "V4"
}

const (
	// Port is the standard mDNS UDP port.
	Port = 5353

	ipv4Group = "224.0.0.251"
	ipv6Group = "ff02::fb"
)

// MulticastAddr returns the UDP address of the mDNS multicast group
// appropriate for family.
func MulticastAddr(family IPFamily) *net.UDPAddr {
	if family == V6 {
		return &net.UDPAddr{IP: net.ParseIP(ipv6Group), Port: Port}
	}
	return &net.UDPAddr{IP: net.ParseIP(ipv4Group), Port: Port}
}

func network6(family IPFamily) string {
	if family == V6 {
		return "udp6"
	}
	return "udp4"
}

// JoinMulticast returns a UDP socket bound to the mDNS port and joined to
// the multicast group for family. On POSIX it sets SO_REUSEADDR and
// SO_REUSEPORT and binds directly to the multicast address, so it can
// coexist with Avahi/Bonjour already listening on 5353. On Windows it binds
// the unspecified address instead, since Windows' SO_REUSEADDR already
// grants the needed port-sharing semantics and binding a Windows socket
// directly to a multicast address is unreliable.
//
// ifaces restricts which interfaces join the group; for IPv6 only its first
// entry is used. A nil or empty slice joins network.DefaultInterfaces() for
// IPv4, or the single default-route interface for IPv6 (index 0, meaning
// "let the kernel pick", if no default route can be resolved). For IPv6 the returned conn also has its outgoing
// multicast interface pinned to the joined interface, since the Sender
// shares it.
func JoinMulticast(ctx context.Context, family IPFamily, ifaces []net.Interface) (net.PacketConn, error) {
	netw := network6(family)

	lc := net.ListenConfig{Control: platformControl}

	bindAddr := fmt.Sprintf("%s:%d", MulticastAddr(family).IP.String(), Port)
	if runtime.GOOS == "windows" {
		if family == V6 {
			bindAddr = fmt.Sprintf(":%d", Port)
		} else {
			bindAddr = fmt.Sprintf("0.0.0.0:%d", Port)
		}
	}

	conn, err := lc.ListenPacket(ctx, netw, bindAddr)
	if err != nil {
		return nil, wrap("join multicast", err)
	}

	if family == V6 {
		p := ipv6.NewPacketConn(conn)
		idx := defaultIfaceIndex(ifaces)
		var iface *net.Interface
		if idx != 0 {
			if found, ferr := net.InterfaceByIndex(idx); ferr == nil {
				iface = found
			}
		}
		if err := p.JoinGroup(iface, MulticastAddr(V6)); err != nil {
			_ = conn.Close()
			return nil, wrap("join ipv6 multicast group", err)
		}
		// The Sender transmits on this conn too. Left to the kernel, an
		// outgoing multicast send can leave on an interface with no route
		// to the group (macOS is prone to this), so pin sends to the
		// interface the group was joined on.
		if iface != nil {
			if err := p.SetMulticastInterface(iface); err != nil {
				_ = conn.Close()
				return nil, wrap("set multicast interface", err)
			}
		}
		return conn, nil
	}

	p := ipv4.NewPacketConn(conn)
	joinIfaces := ifaces
	if len(joinIfaces) == 0 {
		joinIfaces, err = network.DefaultInterfaces()
		if err != nil {
			_ = conn.Close()
			return nil, wrap("enumerate interfaces", err)
		}
	}

	joined := 0
	for i := range joinIfaces {
		iface := joinIfaces[i]
		if err := p.JoinGroup(&iface, MulticastAddr(V4)); err == nil {
			joined++
		}
	}
	if joined == 0 {
		_ = conn.Close()
		return nil, wrap("join ipv4 multicast group", fmt.Errorf("no usable interface"))
	}

	return conn, nil
}

// CreateSenderSocket returns a UDP socket bound to an ephemeral port on the
// unspecified address of family, for callers that need to transmit queries
// without joining the group. The Facade does not use it: its Sender shares
// the JoinMulticast conn so that unicast-preferred responses come back to a
// port the Receiver reads. For IPv6 the outgoing multicast interface is set
// to the default route's index (per network.DefaultRouteIndex), or left to
// the kernel if 0.
func CreateSenderSocket(family IPFamily) (net.PacketConn, error) {
	netw := network6(family)
	bindAddr := ":0"

	conn, err := net.ListenPacket(netw, bindAddr)
	if err != nil {
		return nil, wrap("create sender socket", err)
	}

	if family == V6 {
		p := ipv6.NewPacketConn(conn)
		idx := network.DefaultRouteIndex()
		if idx != 0 {
			if iface, ferr := net.InterfaceByIndex(idx); ferr == nil {
				if err := p.SetMulticastInterface(iface); err != nil {
					_ = conn.Close()
					return nil, wrap("set multicast interface", err)
				}
			}
		}
	}

	return conn, nil
}

func defaultIfaceIndex(ifaces []net.Interface) int {
	if len(ifaces) > 0 {
		return ifaces[0].Index
	}
	return network.DefaultRouteIndex()
}
