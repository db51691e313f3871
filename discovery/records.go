package discovery

import (
	"net"

	"github.com/nyxsd/dnssd/internal/socket"
	"github.com/nyxsd/dnssd/internal/wire"
)

// resolveChain walks the most recent ResponseSet for name, returning the
// labels name resolves through: name itself, then a single chain of PTR/SRV
// service fields within that one packet's record list. At each step only the
// first PTR/SRV record under the current label whose service is not yet in
// the chain is followed; other branches are not explored. Resolution never
// crosses packets; within a packet, following
// PTR -> SRV -> hostname materially improves hit rate for responders that
// split PTR/SRV/TXT from the A/AAAA answer.
func resolveChain(records []wire.Record, name string) []string {
	chain := []string{name}
	visited := map[string]bool{name: true}

	frontier := name
	for {
		next := ""
		for _, rec := range records {
			if rec.Label != frontier {
				continue
			}
			if rec.Kind != wire.KindPTR && rec.Kind != wire.KindSRV {
				continue
			}
			if rec.Service == "" || visited[rec.Service] {
				continue
			}
			next = rec.Service
			break
		}
		if next == "" {
			return chain
		}
		chain = append(chain, next)
		visited[next] = true
		frontier = next
	}
}

// GetIPAddress returns the host address from the latest response under
// name, filtered to the Facade's configured IP family: A records satisfy a
// V4 family, AAAA records satisfy V6. It returns ok=false if no response
// has been recorded or no record of the right family is reachable.
func (f *Facade) GetIPAddress(name string) (addr net.IP, ok bool) {
	set, ok := f.reg.Latest(name)
	if !ok {
		return nil, false
	}

	wantKind := wire.KindA
	if f.family == socket.V6 {
		wantKind = wire.KindAAAA
	}

	for _, label := range resolveChain(set.Records, name) {
		for _, rec := range set.Records {
			if rec.Label == label && rec.Kind == wantKind {
				return rec.Address, true
			}
		}
	}
	return nil, false
}

// GetPort returns the SRV port from the latest response under name, or
// ok=false if no response or no reachable SRV record exists.
func (f *Facade) GetPort(name string) (port uint16, ok bool) {
	set, ok := f.reg.Latest(name)
	if !ok {
		return 0, false
	}

	for _, label := range resolveChain(set.Records, name) {
		for _, rec := range set.Records {
			if rec.Label == label && rec.Kind == wire.KindSRV {
				return rec.Port, true
			}
		}
	}
	return 0, false
}

// GetIPAndPort is a convenience wrapper returning both GetIPAddress and
// GetPort, only ok if both resolve.
func (f *Facade) GetIPAndPort(name string) (addr net.IP, port uint16, ok bool) {
	a, aok := f.GetIPAddress(name)
	if !aok {
		return nil, 0, false
	}
	p, pok := f.GetPort(name)
	if !pok {
		return nil, 0, false
	}
	return a, p, true
}

// GetTXTRecords returns the ordered key=value strings from the latest
// response under name, or ok=false if no response or no reachable TXT
// record exists.
func (f *Facade) GetTXTRecords(name string) (records []string, ok bool) {
	set, ok := f.reg.Latest(name)
	if !ok {
		return nil, false
	}

	for _, label := range resolveChain(set.Records, name) {
		for _, rec := range set.Records {
			if rec.Label == label && rec.Kind == wire.KindTXT {
				return rec.TXT, true
			}
		}
	}
	return nil, false
}
