// Package discovery provides a long-running mDNS/DNS-SD client: register
// the service names you care about, and poll for their resolved address,
// port, and TXT metadata as responses arrive.
//
// # Overview
//
// Create discovers services over IPv4 or IPv6 multicast DNS (RFC 6762) and
// keeps a background Sender and Receiver running for the lifetime of the
// returned Facade: the Sender re-announces every wanted name once a
// second, and the Receiver decodes incoming responses and attributes them
// back to the name that requested them.
//
// # Quick Start
//
//	d, err := discovery.Create(discovery.V6)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer d.Close()
//
//	d.FindService("DIRIGERA._hap._tcp.local")
//
//	for i := 0; i < 10; i++ {
//	    if addr, port, ok := d.GetIPAndPort("DIRIGERA._hap._tcp.local"); ok {
//	        fmt.Printf("found at %s:%d\n", addr, port)
//	        break
//	    }
//	    time.Sleep(200 * time.Millisecond)
//	}
//
// # Polling, not pushing
//
// There is no callback or channel API: consumers poll GetIPAddress,
// GetPort, GetIPAndPort, and GetTXTRecords at whatever cadence suits them.
// Each call reads the most recently received ResponseSet for the name;
// there is no blocking and no explicit "not yet resolved" error, only a
// false ok.
//
// # Lifecycle
//
// Close stops the Sender and Receiver and releases the underlying socket.
// No explicit join is required from callers; Close blocks until both
// background goroutines have exited.
package discovery
