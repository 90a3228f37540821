package ntfs

import (
	"encoding/binary"
	"testing"
)

// buildRecord lays out one USN_RECORD_V2 for the given fields, returning the
// raw bytes so tests can stitch pages together exactly like the kernel
// would.
func buildRecord(t *testing.T, frn, parent uint64, usn int64, attrs uint32, name string) []byte {
	t.Helper()
	nameBytes := EncodeUTF16LE(name)
	length := recordHeaderSize + len(nameBytes)
	// USN records are padded to 8-byte boundaries on the wire; keep the
	// length exact here since DecodeRecord only requires RecordLength <=
	// remaining, not 8-byte alignment.
	buf := make([]byte, length)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(length))
	binary.LittleEndian.PutUint16(buf[4:6], 2) // MajorVersion
	binary.LittleEndian.PutUint16(buf[6:8], 0) // MinorVersion
	binary.LittleEndian.PutUint64(buf[8:16], frn)
	binary.LittleEndian.PutUint64(buf[16:24], parent)
	binary.LittleEndian.PutUint64(buf[24:32], uint64(usn))
	binary.LittleEndian.PutUint32(buf[52:56], attrs)
	binary.LittleEndian.PutUint16(buf[56:58], uint16(len(nameBytes)))
	binary.LittleEndian.PutUint16(buf[58:60], recordHeaderSize)
	copy(buf[recordHeaderSize:], nameBytes)
	return buf
}

func TestDecodeRecordRoundTrip(t *testing.T) {
	raw := buildRecord(t, 42, 7, 100, DirectoryAttribute, "Documents")
	rec, length, err := DecodeRecord(raw)
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if int(length) != len(raw) {
		t.Fatalf("length = %d, want %d", length, len(raw))
	}
	if rec.FileReferenceNumber != 42 || rec.ParentFileReferenceNumber != 7 {
		t.Fatalf("unexpected FRNs: %+v", rec)
	}
	if rec.Name != "Documents" {
		t.Fatalf("Name = %q", rec.Name)
	}
	if !rec.IsDirectory() {
		t.Fatal("expected directory attribute to be set")
	}
}

func TestDecodeRecordShortBuffer(t *testing.T) {
	_, _, err := DecodeRecord(make([]byte, 10))
	if err != ErrShortRecord {
		t.Fatalf("err = %v, want ErrShortRecord", err)
	}
}

func TestDecodeRecordInvalidLength(t *testing.T) {
	raw := buildRecord(t, 1, 0, 0, 0, "x")
	// Claim a RecordLength far larger than the buffer.
	binary.LittleEndian.PutUint32(raw[0:4], 9000)
	_, _, err := DecodeRecord(raw)
	if err == nil {
		t.Fatal("expected error for out-of-range RecordLength")
	}
}

func TestDecodePageFraming(t *testing.T) {
	r1 := buildRecord(t, 1, RootFRN, 10, 0, "a.txt")
	r2 := buildRecord(t, 2, RootFRN, 11, DirectoryAttribute, "sub")

	const nextStart = int64(3)
	buf := make([]byte, 8+len(r1)+len(r2))
	binary.LittleEndian.PutUint64(buf[0:8], uint64(nextStart))
	copy(buf[8:], r1)
	copy(buf[8+len(r1):], r2)

	page, err := DecodePage(buf, len(buf))
	if err != nil {
		t.Fatalf("DecodePage: %v", err)
	}
	if page.NextStartFRN != nextStart {
		t.Fatalf("NextStartFRN = %d, want %d", page.NextStartFRN, nextStart)
	}
	if len(page.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(page.Records))
	}
	if page.Records[0].Name != "a.txt" || page.Records[1].Name != "sub" {
		t.Fatalf("unexpected names: %+v", page.Records)
	}
	if page.Records[0].IsDirectory() {
		t.Fatal("a.txt should not be a directory")
	}
	if !page.Records[1].IsDirectory() {
		t.Fatal("sub should be a directory")
	}
}

func TestDecodePageEmpty(t *testing.T) {
	buf := make([]byte, 8)
	page, err := DecodePage(buf, 8)
	if err != nil {
		t.Fatalf("DecodePage: %v", err)
	}
	if len(page.Records) != 0 {
		t.Fatalf("expected no records, got %d", len(page.Records))
	}
}

func TestEnumRequestEncode(t *testing.T) {
	req := RootEnumRequest(99)
	buf := req.Encode()
	if got := binary.LittleEndian.Uint64(buf[0:8]); got != 99 {
		t.Fatalf("StartFileReferenceNumber = %d, want 99", got)
	}
	if got := int64(binary.LittleEndian.Uint64(buf[8:16])); got != 0 {
		t.Fatalf("LowUsn = %d, want 0", got)
	}
	hi := int64(binary.LittleEndian.Uint64(buf[16:24]))
	if hi <= 0 {
		t.Fatalf("HighUsn = %d, want max int64", hi)
	}
}
