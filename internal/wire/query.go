package wire

import "encoding/binary"

// EncodeQuery builds an mDNS query for name: header with id=0,
// flags=0, qdcount=1; the name's labels; QTYPE ANY (0x00ff); QCLASS 0x8001
// (IN with the unicast-response-preferred bit set).
func EncodeQuery(name string) ([]byte, *Error) {
	encodedName, err := encodeName(name)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, headerLength+len(encodedName)+4)
	out = append(out, encodeQueryHeader()...)
	out = append(out, encodedName...)

	tail := make([]byte, 4)
	binary.BigEndian.PutUint16(tail[0:2], TypeANY)
	binary.BigEndian.PutUint16(tail[2:4], ClassIN)
	out = append(out, tail...)

	return out, nil
}
