package hash

import (
	"testing"
)

func TestSHA256Hex(t *testing.T) {
	// Known SHA256 of "hello"
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	got := SHA256Hex("hello")
	if got != want {
		t.Errorf("SHA256Hex(\"hello\") = %s, want %s", got, want)
	}
}

func TestSHA256Hex_Empty(t *testing.T) {
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	got := SHA256Hex("")
	if got != want {
		t.Errorf("SHA256Hex(\"\") = %s, want %s", got, want)
	}
}

func TestShort(t *testing.T) {
	full := SHA256Hex("203.0.113.7")

	tests := []struct {
		name string
		n    int
		want string
	}{
		{"12 chars", 12, full[:12]},
		{"zero", 0, ""},
		{"full hash if too long", 100, full},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Short("203.0.113.7", tt.n); got != tt.want {
				t.Errorf("Short(%d) = %s, want %s", tt.n, got, tt.want)
			}
		})
	}
}

func TestIteratedSHA256(t *testing.T) {
	// 1 iteration should equal a single SHA256
	oneIter := IteratedSHA256("test", 1)
	single := SHA256Hex("test")
	if oneIter != single {
		t.Errorf("IteratedSHA256(\"test\", 1) = %s, want %s", oneIter, single)
	}

	multiIter := IteratedSHA256("test", 5000)
	if multiIter == single {
		t.Error("5000 iterations should differ from single iteration")
	}
	if multiIter != IteratedSHA256("test", 5000) {
		t.Error("IteratedSHA256 should be deterministic")
	}
}

func TestHashIP(t *testing.T) {
	ip := "192.168.1.1"
	salt := "random-salt-value"
	hash := HashIP(ip, salt)

	if len(hash) != 64 {
		t.Errorf("HashIP length = %d, want 64", len(hash))
	}
	if hash == HashIP(ip, "different-salt") {
		t.Error("different salts should produce different hashes")
	}
	if hash == HashIP("10.0.0.1", salt) {
		t.Error("different IPs should produce different hashes")
	}
}

func sp(s string) *string { return &s }

func TestDigest(t *testing.T) {
	a := NewDigest()
	a.Add(sp("ab"), sp("c"))
	b := NewDigest()
	b.Add(sp("a"), sp("bc"))
	if a.Sum() == b.Sum() {
		t.Error("field boundaries should change the digest")
	}

	c := NewDigest()
	c.Add(sp("ab"), sp("c"))
	if a.Sum() != c.Sum() {
		t.Error("Digest should be deterministic")
	}

	empty, null := NewDigest(), NewDigest()
	empty.Add(sp(""))
	null.Add(nil)
	if empty.Sum() == null.Sum() {
		t.Error("nil and empty fields should hash differently")
	}
}

func TestDigest_OrderSensitive(t *testing.T) {
	first, second := NewDigest(), NewDigest()
	first.Add(sp("x"))
	first.Add(sp("y"))
	second.Add(sp("y"))
	second.Add(sp("x"))
	if first.Sum() == second.Sum() {
		t.Error("record order should change the digest")
	}
	if first.Records() != 2 {
		t.Errorf("Records() = %d, want 2", first.Records())
	}
}
