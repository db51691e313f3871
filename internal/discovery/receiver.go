// Package discovery implements the Sender and Receiver background tasks
// that drive the Registry: the Sender periodically multicasts queries for
// every wanted service name, and the Receiver blocks on the shared socket,
// decodes incoming packets, and attributes matching records back to the
// user-facing service names that requested them.
package discovery

import (
	"context"
	"log"
	"net"

	"github.com/nyxsd/dnssd/internal/registry"
	"github.com/nyxsd/dnssd/internal/wire"
)

// DefaultReceiveBufferSize is the receive buffer size. It is overridable
// only for test injection; production callers should leave it at the
// default.
const DefaultReceiveBufferSize = 4096

// Receiver owns the shared multicast socket's read side: it blocks on
// recv_from, decodes each datagram, and deposits matching records into the
// Registry.
type Receiver struct {
	conn    net.PacketConn
	reg     *registry.Registry
	logger  *log.Logger
	bufSize int
}

// NewReceiver constructs a Receiver reading from conn and writing matches
// into reg. bufSize of 0 selects DefaultReceiveBufferSize.
func NewReceiver(conn net.PacketConn, reg *registry.Registry, logger *log.Logger, bufSize int) *Receiver {
	if bufSize <= 0 {
		bufSize = DefaultReceiveBufferSize
	}
	return &Receiver{conn: conn, reg: reg, logger: logger, bufSize: bufSize}
}

// Run blocks, reading and attributing packets until ctx is canceled.
// Per-packet errors (receive faults, parse faults) are logged and never
// terminate the loop, including errors from a closed socket; only ctx
// cancellation does. A read blocked at cancellation returns once the
// socket is closed, as Facade.Close does.
func (r *Receiver) Run(ctx context.Context) {
	buf := make([]byte, r.bufSize)

	for {
		if ctx.Err() != nil {
			return
		}

		n, _, err := r.conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			r.logger.Printf("discovery: receive error: %v", err)
			continue
		}

		wanted := r.reg.WantedSnapshot()
		if len(wanted) == 0 {
			continue
		}

		records, decErr := wire.DecodeResponse(buf[:n])
		if decErr != nil {
			r.logger.Printf("discovery: dropping malformed packet: %v", decErr)
			continue
		}

		r.attribute(wanted, records)
	}
}

// attribute builds a per-packet reverse-lookup
// map from PTR/SRV service fields back to a wanted label, then append the
// full record list under every wanted name reached directly or through that
// map. Cross-packet correlation is deliberately not attempted: mDNS bundles
// a complete PTR -> SRV -> A/AAAA -> TXT answer chain into one datagram in
// the common case.
func (r *Receiver) attribute(wanted []string, records []wire.Record) {
	wantedSet := make(map[string]bool, len(wanted))
	for _, name := range wanted {
		wantedSet[name] = true
	}

	reverse := make(map[string]string)
	for _, rec := range records {
		if rec.Kind != wire.KindPTR && rec.Kind != wire.KindSRV {
			continue
		}
		if !wantedSet[rec.Label] {
			continue
		}
		if rec.Service == rec.Label {
			continue
		}
		reverse[rec.Service] = rec.Label
	}

	matched := make(map[string]bool)
	for _, rec := range records {
		if wantedSet[rec.Label] {
			matched[rec.Label] = true
			continue
		}
		if target, ok := reverse[rec.Label]; ok {
			matched[target] = true
		}
	}

	for name := range matched {
		r.reg.AppendResponse(name, records)
	}
}
