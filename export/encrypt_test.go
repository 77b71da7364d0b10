package export

import (
	"bytes"
	"testing"
)

func TestSealRoundTrip(t *testing.T) {
	plain := []byte("PK\x03\x04 pretend bundle")
	sealed, err := Seal("correct horse", plain)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if bytes.Contains(sealed, plain) {
		t.Fatal("sealed artifact contains plaintext")
	}
	got, err := Open("correct horse", sealed)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(got, plain) {
		t.Fatal("round trip mismatch")
	}
}

func TestOpenWrongPassword(t *testing.T) {
	sealed, err := Seal("right", []byte("secret"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if _, err := Open("wrong", sealed); err == nil {
		t.Fatal("expected error for wrong password")
	}
}

func TestOpenTamperedArtifact(t *testing.T) {
	sealed, err := Seal("pw", []byte("secret"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	sealed[len(sealed)-1] ^= 0x01
	if _, err := Open("pw", sealed); err == nil {
		t.Fatal("expected error for tampered artifact")
	}
}

func TestOpenRejectsForeignData(t *testing.T) {
	if _, err := Open("pw", []byte("not sealed at all")); err == nil {
		t.Fatal("expected error for data without magic")
	}
	if _, err := Open("pw", sealMagic); err == nil {
		t.Fatal("expected error for truncated artifact")
	}
}
