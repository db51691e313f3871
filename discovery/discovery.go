package discovery

import (
	"context"
	"log"
	"net"
	"sync"

	internaldiscovery "github.com/nyxsd/dnssd/internal/discovery"
	"github.com/nyxsd/dnssd/internal/registry"
	"github.com/nyxsd/dnssd/internal/socket"
)

// IPFamily selects whether discovery runs over IPv4 or IPv6 multicast. It
// determines both the group queries are sent to and the address-record
// family the Get* methods surface.
type IPFamily = socket.IPFamily

const (
	V4 = socket.V4
	V6 = socket.V6
)

// Facade is the public mDNS/DNS-SD client. It owns a Registry, a Sender
// goroutine, and a Receiver goroutine, all created together and living
// until Close.
type Facade struct {
	reg    *registry.Registry
	conn   net.PacketConn
	family socket.IPFamily
	logger *log.Logger
	ifaces []net.Interface

	recvBufSize int

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Create starts the Sender and Receiver and returns a ready-to-use Facade.
// It fails only if socket creation or the multicast group join fails;
// every other fault surfaces later, to the Sender's or Receiver's logger,
// never to the caller.
func Create(family IPFamily, opts ...Option) (*Facade, error) {
	f := &Facade{
		reg:    registry.New(),
		family: family,
		logger: log.Default(),
	}

	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel

	conn, err := socket.JoinMulticast(ctx, family, f.ifaces)
	if err != nil {
		cancel()
		return nil, err
	}
	f.conn = conn

	sender := internaldiscovery.NewSender(conn, f.reg, f.logger, family)
	receiver := internaldiscovery.NewReceiver(conn, f.reg, f.logger, f.recvBufSize)

	f.wg.Add(2)
	go func() {
		defer f.wg.Done()
		sender.Run(ctx)
	}()
	go func() {
		defer f.wg.Done()
		receiver.Run(ctx)
	}()

	return f, nil
}

// FindService registers interest in name. Registering the same name twice
// is harmless; duplicates are not required to be coalesced.
func (f *Facade) FindService(name string) {
	f.reg.AddWanted(name)
}

// StopFindService deregisters interest in name. Previously received
// responses remain resolvable; see Invariant 1.
func (f *Facade) StopFindService(name string) {
	f.reg.RemoveWanted(name)
}

// Close stops the Sender and Receiver, waits for both to exit, and closes
// the underlying socket.
func (f *Facade) Close() error {
	f.cancel()
	err := f.conn.Close()
	f.wg.Wait()
	return err
}
