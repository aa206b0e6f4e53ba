package flate

import (
	"bytes"
	"testing"
)

func TestHistoryAppendAndCopyByDistance(t *testing.T) {
	data := []byte("ABCDEFG")
	for i := 1; i <= len(data); i++ {
		// Copy appends what it reads, so each distance is checked against
		// a fresh history holding only data.
		var h History
		for _, b := range data {
			h.Append(b)
		}
		var out bytes.Buffer
		if err := h.Copy(i, 1, &out); err != nil {
			t.Fatalf("Copy(dist=%d): %v", i, err)
		}
		want := data[len(data)-i]
		if got := out.Bytes()[0]; got != want {
			t.Errorf("Copy(dist=%d): got %q, want %q", i, got, want)
		}
	}
}

func TestHistoryOverlappingCopy(t *testing.T) {
	var h History
	h.Append('A')
	var out bytes.Buffer
	if err := h.Copy(1, 4, &out); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	want := "AAAA"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestHistoryWrapInvalidatesOldDistance(t *testing.T) {
	var h History
	for i := 0; i < MaxHist+1; i++ {
		h.Append(byte(i))
	}
	var out bytes.Buffer
	err := h.Copy(MaxHist+1, 1, &out)
	if err == nil {
		t.Fatal("expected InvalidCopy for a distance beyond the window")
	}
	if _, ok := err.(InternalError); !ok {
		t.Errorf("got %T %v, want InternalError", err, err)
	}
}

func TestHistoryCopyRejectsOutOfRangeDistance(t *testing.T) {
	var h History
	h.Append('x')
	var out bytes.Buffer
	if err := h.Copy(2, 1, &out); err == nil {
		t.Fatal("expected error: distance exceeds count")
	}
	if err := h.Copy(0, 1, &out); err == nil {
		t.Fatal("expected error: distance below 1")
	}
}
