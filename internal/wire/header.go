package wire

import "encoding/binary"

const headerLength = 12

const flagQR uint16 = 0x8000

// header mirrors the 12-octet DNS message header.
type header struct {
	id      uint16
	flags   uint16
	qdcount uint16
	ancount uint16
	nscount uint16
	arcount uint16
}

// decodeHeader parses and validates the message header: id must
// be zero (this library accepts only unsolicited mDNS traffic), the
// response bit must be set, and at least one of ancount/arcount must be
// nonzero.
func decodeHeader(buf []byte) (header, *Error) {
	if len(buf) < headerLength {
		return header{}, newErr(InvalidHeader, "decode header", 0, "buffer shorter than 12 bytes")
	}

	h := header{
		id:      binary.BigEndian.Uint16(buf[0:2]),
		flags:   binary.BigEndian.Uint16(buf[2:4]),
		qdcount: binary.BigEndian.Uint16(buf[4:6]),
		ancount: binary.BigEndian.Uint16(buf[6:8]),
		nscount: binary.BigEndian.Uint16(buf[8:10]),
		arcount: binary.BigEndian.Uint16(buf[10:12]),
	}

	if h.id != 0 {
		return header{}, newErr(InvalidHeader, "decode header", 0, "id must be zero for unsolicited mDNS traffic")
	}
	if h.flags&flagQR == 0 {
		return header{}, newErr(NotResponse, "decode header", 2, "QR bit not set")
	}
	if h.ancount == 0 && h.arcount == 0 {
		return header{}, newErr(NoAnswers, "decode header", 6, "ancount and arcount both zero")
	}

	return h, nil
}

// encodeQueryHeader renders a header for an outgoing query: id=0, flags=0,
// qdcount=1, all other counts zero.
func encodeQueryHeader() []byte {
	buf := make([]byte, headerLength)
	binary.BigEndian.PutUint16(buf[4:6], 1)
	return buf
}
