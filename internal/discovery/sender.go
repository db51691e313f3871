package discovery

import (
	"context"
	"log"
	"net"
	"time"

	"github.com/nyxsd/dnssd/internal/registry"
	"github.com/nyxsd/dnssd/internal/socket"
	"github.com/nyxsd/dnssd/internal/wire"
)

// tickInterval is the cadence between query bursts.
const tickInterval = time.Second

// Sender periodically emits one query per wanted service name to the mDNS
// multicast group matching the configured IP family.
type Sender struct {
	conn   net.PacketConn
	reg    *registry.Registry
	logger *log.Logger
	family socket.IPFamily
}

// NewSender constructs a Sender writing to conn on behalf of family,
// reading the wanted list from reg.
func NewSender(conn net.PacketConn, reg *registry.Registry, logger *log.Logger, family socket.IPFamily) *Sender {
	return &Sender{conn: conn, reg: reg, logger: logger, family: family}
}

// Run loops until ctx is canceled, sending one query per wanted name every
// tickInterval. A send failure is treated as fatal to this goroutine: it is
// logged and Run returns, leaving future queries unsent. The caller
// observes this only as queries silently going stale; logging is the sole
// notification.
func (s *Sender) Run(ctx context.Context) {
	group := socket.MulticastAddr(s.family)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		for _, name := range s.reg.WantedSnapshot() {
			query, err := wire.EncodeQuery(name)
			if err != nil {
				s.logger.Printf("discovery: encode query for %q: %v", name, err)
				continue
			}
			if _, err := s.conn.WriteTo(query, group); err != nil {
				s.logger.Printf("discovery: send query for %q failed, sender stopping: %v", name, err)
				return
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
