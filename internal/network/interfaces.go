// Package network selects which network interfaces the socket layer joins
// the mDNS multicast groups on.
package network

import "net"

// DefaultInterfaces returns the network interfaces suitable for mDNS
// multicast: up, multicast-capable, and not loopback, a VPN tunnel, or a
// container bridge. Callers needing a single interface (the IPv6 join path,
// which must pick the default route's interface) take the first entry;
// callers joining on every usable interface (the IPv4 path) range over the
// whole list. discovery.WithInterfaces overrides this selection entirely.
func DefaultInterfaces() ([]net.Interface, error) {
	all, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	filtered := make([]net.Interface, 0, len(all))
	for _, iface := range all {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		if iface.Flags&net.FlagMulticast == 0 {
			continue
		}
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if isVPN(iface.Name) || isContainerBridge(iface.Name) {
			continue
		}
		filtered = append(filtered, iface)
	}

	return filtered, nil
}

// DefaultRouteIndex returns the interface index DefaultInterfaces considers
// the default route (its first entry), or 0 if none can be resolved. 0
// tells the IPv6 multicast join to let the kernel pick, per the socket
// layer's "interface index, 0 if not resolvable" contract.
func DefaultRouteIndex() int {
	ifaces, err := DefaultInterfaces()
	if err != nil || len(ifaces) == 0 {
		return 0
	}
	return ifaces[0].Index
}

// isVPN reports whether name matches a known VPN tunnel naming convention:
// utun*/tun* (macOS/Linux TUN devices), ppp* (PPTP/L2TP), wg*/wireguard*,
// and tailscale*.
func isVPN(name string) bool {
	vpnPrefixes := []string{"utun", "tun", "ppp", "wg", "tailscale", "wireguard"}
	for _, prefix := range vpnPrefixes {
		if len(name) >= len(prefix) && name[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

// isContainerBridge reports whether name matches Docker's default bridge
// (docker0), a veth pair endpoint, or a custom bridge network (br-*).
func isContainerBridge(name string) bool {
	if name == "docker0" {
		return true
	}
	for _, prefix := range []string{"veth", "br-"} {
		if len(name) >= len(prefix) && name[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}
