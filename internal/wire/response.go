package wire

import (
	"encoding/binary"
	"net"
)

const recordFixedHeaderLength = 10

// DecodeResponse parses a complete mDNS response datagram into its ordered
// record list.
//
// After the header, the question section is skipped (qdcount names, each
// followed by a 4-octet QTYPE/QCLASS pair), then ancount+arcount records are
// parsed as a single stream: this library folds "additional" into the
// answer stream because mDNS responders frequently place A/AAAA answers
// there. Authority records (nscount), which sit between the answers and the
// additional records on the wire, are walked past and contribute no records.
func DecodeResponse(buf []byte) ([]Record, *Error) {
	h, err := decodeHeader(buf)
	if err != nil {
		return nil, err
	}

	pos := headerLength
	for i := uint16(0); i < h.qdcount; i++ {
		_, consumed, nerr := parseName(buf, pos)
		if nerr != nil {
			return nil, nerr
		}
		pos = consumed + 4 // QTYPE + QCLASS
		if pos > len(buf) {
			return nil, newErr(InvalidRecord, "skip question", pos, "truncated question section")
		}
	}

	answers := int(h.ancount)
	authorities := int(h.nscount)
	total := answers + authorities + int(h.arcount)
	records := make([]Record, 0, answers+int(h.arcount))
	for i := 0; i < total; i++ {
		rec, newPos, rerr := parseRecord(buf, pos)
		if rerr != nil {
			return nil, rerr
		}
		pos = newPos
		isAuthority := i >= answers && i < answers+authorities
		if rec != nil && !isAuthority {
			records = append(records, *rec)
		}
	}

	return records, nil
}

// parseRecord decodes one resource record starting at offset, returning the
// decoded Record (nil for an unrecognized type, which is skipped by
// rdlength rather than treated as an error) and
// the offset immediately past the record.
func parseRecord(buf []byte, offset int) (*Record, int, *Error) {
	label, pos, err := parseName(buf, offset)
	if err != nil {
		return nil, 0, err
	}

	if pos+recordFixedHeaderLength > len(buf) {
		return nil, 0, newErr(InvalidRecord, "parse record", pos, "truncated fixed record header")
	}

	rtype := binary.BigEndian.Uint16(buf[pos : pos+2])
	rdlength := int(binary.BigEndian.Uint16(buf[pos+8 : pos+10]))
	rdataStart := pos + recordFixedHeaderLength
	rdataEnd := rdataStart + rdlength
	if rdataEnd > len(buf) {
		return nil, 0, newErr(InvalidRecord, "parse record", rdataStart, "rdlength runs past end of buffer")
	}
	rdata := buf[rdataStart:rdataEnd]

	var rec *Record
	switch rtype {
	case TypeA:
		if len(rdata) != 4 {
			return nil, 0, newErr(InvalidType, "parse A record", rdataStart, "rdlength must be 4")
		}
		addr := make(net.IP, 4)
		copy(addr, rdata)
		rec = &Record{Kind: KindA, Label: label, Address: addr}

	case TypeAAAA:
		if len(rdata) != 16 {
			return nil, 0, newErr(InvalidType, "parse AAAA record", rdataStart, "rdlength must be 16")
		}
		addr := make(net.IP, 16)
		copy(addr, rdata)
		rec = &Record{Kind: KindAAAA, Label: label, Address: addr}

	case TypeSRV:
		if len(rdata) < 6 {
			return nil, 0, newErr(InvalidType, "parse SRV record", rdataStart, "rdlength must be at least 6")
		}
		port := binary.BigEndian.Uint16(rdata[4:6])
		target, _, terr := parseName(buf, rdataStart+6)
		if terr != nil {
			return nil, 0, terr
		}
		rec = &Record{Kind: KindSRV, Label: label, Service: target, Port: port}

	case TypePTR:
		target, _, terr := parseName(buf, rdataStart)
		if terr != nil {
			return nil, 0, terr
		}
		rec = &Record{Kind: KindPTR, Label: label, Service: target}

	case TypeTXT:
		strs, terr := parseTXT(rdata, rdataStart)
		if terr != nil {
			return nil, 0, terr
		}
		rec = &Record{Kind: KindTXT, Label: label, TXT: strs}

	default:
		// Any other type: skip by rdlength, emit no record.
		rec = nil
	}

	return rec, rdataEnd, nil
}

// parseTXT decodes a TXT rdata blob as a concatenation of length-prefixed
// byte strings, each validated as UTF-8.
func parseTXT(rdata []byte, baseOffset int) ([]string, *Error) {
	var strs []string
	offset := 0
	for offset < len(rdata) {
		length := int(rdata[offset])
		offset++
		if offset+length > len(rdata) {
			return nil, newErr(InvalidRecord, "parse TXT record", baseOffset+offset, "truncated TXT string")
		}
		chunk := rdata[offset : offset+length]
		if !validUTF8(chunk) {
			return nil, newErr(InvalidUTF8, "parse TXT record", baseOffset+offset, "TXT string is not valid UTF-8")
		}
		strs = append(strs, string(chunk))
		offset += length
	}
	return strs, nil
}
