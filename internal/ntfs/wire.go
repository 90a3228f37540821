// Package ntfs encodes and decodes the on-wire structures exchanged with the
// NTFS MFT/USN control interface: the MFT_ENUM_DATA_V0 request, and the
// USN_RECORD_V2 records returned by FSCTL_ENUM_USN_DATA.
//
// Everything here is pure byte-slice manipulation so it can be exercised
// without a Windows volume handle.
package ntfs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"unicode/utf16"
)

// RootFRN is the fixed file reference number of a volume's root directory.
const RootFRN uint64 = 0x0005_0000_0000_0005

// DirectoryAttribute is the FILE_ATTRIBUTE_DIRECTORY bit in FileAttributes.
const DirectoryAttribute uint32 = 0x10

// recordHeaderSize is the byte length of a USN_RECORD_V2 up to (not
// including) the variable-length name.
const recordHeaderSize = 60

// EnumRequest is MFT_ENUM_DATA_V0: 24 bytes, little-endian, no padding.
type EnumRequest struct {
	StartFileReferenceNumber uint64
	LowUsn                   int64
	HighUsn                  int64
}

// RootEnumRequest builds the request that enumerates the entire MFT, i.e.
// "from the beginning to the end of time".
func RootEnumRequest(start uint64) EnumRequest {
	return EnumRequest{
		StartFileReferenceNumber: start,
		LowUsn:                   0,
		HighUsn:                  math.MaxInt64,
	}
}

// Encode marshals the request into the 24-byte wire layout DeviceIoControl
// expects as input for FSCTL_ENUM_USN_DATA.
func (r EnumRequest) Encode() [24]byte {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:8], r.StartFileReferenceNumber)
	binary.LittleEndian.PutUint64(buf[8:16], uint64(r.LowUsn))
	binary.LittleEndian.PutUint64(buf[16:24], uint64(r.HighUsn))
	return buf
}

// Record is the decoded subset of a USN_RECORD_V2 that the search engine
// consults: identity, parent, attributes and name. TimeStamp, Reason,
// SourceInfo and SecurityId are part of the wire format but are never read.
type Record struct {
	FileReferenceNumber       uint64
	ParentFileReferenceNumber uint64
	Usn                       int64
	FileAttributes            uint32
	Name                      string
}

// IsDirectory reports whether the record's FILE_ATTRIBUTE_DIRECTORY bit is
// set.
func (r Record) IsDirectory() bool {
	return r.FileAttributes&DirectoryAttribute != 0
}

// ErrShortRecord is returned when a buffer is too small to hold even a
// record header.
var ErrShortRecord = errors.New("ntfs: buffer shorter than a USN record header")

// ErrInvalidRecordLength is returned when a record's self-reported length
// is outside the valid range for the remaining buffer.
type ErrInvalidRecordLength struct {
	RecordLength uint32
	Remaining    int
}

func (e *ErrInvalidRecordLength) Error() string {
	return fmt.Sprintf("ntfs: invalid record length %d (remaining %d bytes)", e.RecordLength, e.Remaining)
}

// DecodeRecord reads a single USN_RECORD_V2 from the start of buf.
//
// It returns the decoded record and the record's total length (header plus
// name), which the caller uses to advance to the next record. buf must
// contain at least the record's declared RecordLength bytes; anything past
// that is ignored.
func DecodeRecord(buf []byte) (Record, uint32, error) {
	if len(buf) < recordHeaderSize {
		return Record{}, 0, ErrShortRecord
	}

	recordLength := binary.LittleEndian.Uint32(buf[0:4])
	if recordLength < recordHeaderSize || int(recordLength) > len(buf) {
		return Record{}, 0, &ErrInvalidRecordLength{RecordLength: recordLength, Remaining: len(buf)}
	}

	frn := binary.LittleEndian.Uint64(buf[8:16])
	parent := binary.LittleEndian.Uint64(buf[16:24])
	usn := int64(binary.LittleEndian.Uint64(buf[24:32]))
	attrs := binary.LittleEndian.Uint32(buf[52:56])
	nameLen := binary.LittleEndian.Uint16(buf[56:58])
	nameOff := binary.LittleEndian.Uint16(buf[58:60])

	end := uint32(nameOff) + uint32(nameLen)
	if end > recordLength {
		return Record{}, 0, &ErrInvalidRecordLength{RecordLength: recordLength, Remaining: len(buf)}
	}

	name := decodeUTF16LE(buf[nameOff:end])

	return Record{
		FileReferenceNumber:       frn,
		ParentFileReferenceNumber: parent,
		Usn:                       usn,
		FileAttributes:            attrs,
		Name:                      name,
	}, recordLength, nil
}

// Page is a decoded FSCTL_ENUM_USN_DATA output buffer: the next start FRN
// to resume enumeration from, and every record it contained.
type Page struct {
	NextStartFRN int64
	Records      []Record
}

// DecodePage decodes every record in an enumeration output page. n is the
// number of bytes the kernel actually wrote into buf (bytesReturned); bytes
// past n are not examined. A page is "empty" (no records, enumeration
// finished) when n <= 8, in which case DecodePage returns a zero Page and a
// nil error — callers check len(Records) == 0 to detect end of stream.
func DecodePage(buf []byte, n int) (Page, error) {
	if n <= 8 {
		return Page{}, nil
	}
	if n > len(buf) {
		return Page{}, fmt.Errorf("ntfs: bytesReturned %d exceeds buffer length %d", n, len(buf))
	}

	next := int64(binary.LittleEndian.Uint64(buf[0:8]))
	body := buf[8:n]

	var records []Record
	var offset uint32
	for offset+recordHeaderSize <= uint32(len(body)) {
		rec, length, err := DecodeRecord(body[offset:])
		if err != nil {
			return Page{}, err
		}
		records = append(records, rec)
		offset += length
	}

	return Page{NextStartFRN: next, Records: records}, nil
}

func decodeUTF16LE(b []byte) string {
	u16 := make([]uint16, len(b)/2)
	for i := range u16 {
		u16[i] = binary.LittleEndian.Uint16(b[i*2 : i*2+2])
	}
	return string(utf16.Decode(u16))
}

// EncodeUTF16LE is the inverse of decodeUTF16LE, used by tests to build
// synthetic pages.
func EncodeUTF16LE(s string) []byte {
	u16 := utf16.Encode([]rune(s))
	b := make([]byte, len(u16)*2)
	for i, u := range u16 {
		binary.LittleEndian.PutUint16(b[i*2:i*2+2], u)
	}
	return b
}
