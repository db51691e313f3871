package discovery

import (
	"errors"
	"net"
	"sync"
	"time"
)

// fakeConn is a minimal net.PacketConn test double. Writes are recorded;
// reads are served from a channel the test feeds, so Receiver tests don't
// need a real socket.
type fakeConn struct {
	mu        sync.Mutex
	writes    [][]byte
	writeErr  error
	reads     chan []byte
	closeOnce sync.Once
	closed    chan struct{}
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		reads:  make(chan []byte, 16),
		closed: make(chan struct{}),
	}
}

func (f *fakeConn) ReadFrom(p []byte) (int, net.Addr, error) {
	select {
	case data, ok := <-f.reads:
		if !ok {
			return 0, nil, errors.New("fakeConn: closed")
		}
		n := copy(p, data)
		return n, &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 5353}, nil
	case <-f.closed:
		return 0, nil, errors.New("fakeConn: closed")
	}
}

func (f *fakeConn) WriteTo(p []byte, addr net.Addr) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	cp := make([]byte, len(p))
	copy(cp, p)
	f.writes = append(f.writes, cp)
	return len(p), nil
}

func (f *fakeConn) Close() error {
	f.closeOnce.Do(func() { close(f.closed) })
	return nil
}

func (f *fakeConn) LocalAddr() net.Addr                { return &net.UDPAddr{} }
func (f *fakeConn) SetDeadline(t time.Time) error      { return nil }
func (f *fakeConn) SetReadDeadline(t time.Time) error  { return nil }
func (f *fakeConn) SetWriteDeadline(t time.Time) error { return nil }

func (f *fakeConn) deliver(p []byte) {
	f.reads <- p
}

func (f *fakeConn) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.writes)
}

func (f *fakeConn) setWriteErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeErr = err
}
