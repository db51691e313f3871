package wire

import "net"

// Record type numbers this codec recognizes. Any other value is skipped by
// rdlength and produces no Record.
const (
	TypeA    uint16 = 1
	TypePTR  uint16 = 12
	TypeTXT  uint16 = 16
	TypeAAAA uint16 = 28
	TypeSRV  uint16 = 33
	TypeANY  uint16 = 0x00ff
)

// ClassIN is the Internet class with the mDNS unicast-response-preferred
// bit set, used on outgoing queries.
const ClassIN uint16 = 0x8001

// RecordKind tags which variant a Record holds.
type RecordKind int

const (
	KindPTR RecordKind = iota
	KindSRV
	KindTXT
	KindA
	KindAAAA
)

// Record is a tagged union over the five record shapes this library cares
// about. Exactly one of the type-specific fields is meaningful, selected by
// Kind; unused fields are left at their zero value.
type Record struct {
	// Label is the owner name of the record (the "NAME" field on the wire).
	Label string

	// Service is the pointed-to instance name (PTR) or hostname (SRV).
	Service string

	// Address holds the decoded IPv4 (Kind == KindA) or IPv6 (Kind ==
	// KindAAAA) host address, 4 or 16 bytes respectively.
	Address net.IP

	// TXT holds the ordered key=value strings for a TXT record.
	TXT []string

	Kind RecordKind
	Port uint16
}
