package mft

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/mftfind/mftfind/internal/ntfs"
)

// fakeController plays back a scripted sequence of pages, one per Control
// call, mimicking DeviceIoControl(FSCTL_ENUM_USN_DATA) without a real
// volume.
type fakeController struct {
	pages [][]byte // raw page bytes, as the kernel would return them
	calls int
	err   error // returned on the call after the last page, if set
}

func (f *fakeController) Control(code uint32, in, out []byte) (uint32, error) {
	if code != FSCTL_ENUM_USN_DATA {
		return 0, errors.New("unexpected control code")
	}
	f.calls++
	if f.calls > len(f.pages) {
		if f.err != nil {
			return 0, f.err
		}
		return 8, nil // header only: end of stream
	}
	page := f.pages[f.calls-1]
	n := copy(out, page)
	return uint32(n), nil
}

func rawPage(t *testing.T, next uint64, names []string) []byte {
	t.Helper()
	var body []byte
	for i, name := range names {
		nameBytes := ntfs.EncodeUTF16LE(name)
		length := 60 + len(nameBytes)
		rec := make([]byte, length)
		binary.LittleEndian.PutUint32(rec[0:4], uint32(length))
		binary.LittleEndian.PutUint64(rec[8:16], uint64(i+1))
		binary.LittleEndian.PutUint64(rec[16:24], ntfs.RootFRN)
		binary.LittleEndian.PutUint16(rec[56:58], uint16(len(nameBytes)))
		binary.LittleEndian.PutUint16(rec[58:60], 60)
		copy(rec[60:], nameBytes)
		body = append(body, rec...)
	}
	buf := make([]byte, 8+len(body))
	binary.LittleEndian.PutUint64(buf[0:8], next)
	copy(buf[8:], body)
	return buf
}

func TestEnumerateMultiplePages(t *testing.T) {
	fc := &fakeController{pages: [][]byte{
		rawPage(t, 1, []string{"a.txt", "b.txt"}),
		rawPage(t, 2, []string{"c.txt"}),
	}}

	e := &Enumerator{handle: fc, letter: 'C', pageSize: DefaultPageSize}

	var names []string
	err := e.Enumerate(context.Background(), func(r ntfs.Record) error {
		names = append(names, r.Name)
		return nil
	})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	want := []string{"a.txt", "b.txt", "c.txt"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}
	if fc.calls != 3 {
		t.Fatalf("expected a final empty-page call, got %d calls", fc.calls)
	}
}

func TestEnumerateStopsOnCallbackError(t *testing.T) {
	fc := &fakeController{pages: [][]byte{
		rawPage(t, 1, []string{"a.txt", "b.txt", "c.txt"}),
	}}
	e := &Enumerator{handle: fc, letter: 'C', pageSize: DefaultPageSize}

	boom := errors.New("boom")
	seen := 0
	err := e.Enumerate(context.Background(), func(r ntfs.Record) error {
		seen++
		if seen == 2 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if seen != 2 {
		t.Fatalf("seen = %d, want 2", seen)
	}
}

func TestEnumerateWrapsControlFailure(t *testing.T) {
	boom := errors.New("device gone")
	fc := &fakeController{err: boom}
	e := &Enumerator{handle: fc, letter: 'D', pageSize: DefaultPageSize}

	err := e.Enumerate(context.Background(), func(ntfs.Record) error { return nil })
	var enumErr *EnumerationError
	if !errors.As(err, &enumErr) {
		t.Fatalf("err = %v, want *EnumerationError", err)
	}
	if enumErr.Letter != 'D' {
		t.Fatalf("Letter = %c, want D", enumErr.Letter)
	}
}

func TestEnumerateRespectsCancellation(t *testing.T) {
	fc := &fakeController{pages: [][]byte{
		rawPage(t, 1, []string{"a.txt"}),
		rawPage(t, 2, []string{"b.txt"}),
	}}
	e := &Enumerator{handle: fc, letter: 'C', pageSize: DefaultPageSize}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.Enumerate(ctx, func(ntfs.Record) error {
		t.Fatal("callback should not run after cancellation")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
