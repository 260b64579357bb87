package hash

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	stdhash "hash"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// Short returns the first n characters of SHA256Hex(input).
func Short(input string, n int) string {
	full := SHA256Hex(input)
	if n > len(full) {
		return full
	}
	return full[:n]
}

// IteratedSHA256 applies SHA256 iteratively n times to produce a derived hash.
func IteratedSHA256(input string, iterations int) string {
	data := []byte(input)
	for range iterations {
		h := sha256.Sum256(data)
		data = h[:]
	}
	return hex.EncodeToString(data)
}

// HashIP hashes an IP address with a salt using 5000 iterations of SHA256.
func HashIP(ip, salt string) string {
	return IteratedSHA256(salt+ip, 5000)
}

// Digest is an order-sensitive SHA256 over a sequence of records. Each field
// is length-prefixed so ("ab", "c") and ("a", "bc") hash differently.
type Digest struct {
	h       stdhash.Hash
	records int
}

func NewDigest() *Digest {
	return &Digest{h: sha256.New()}
}

// Add appends one record. A nil field is distinct from an empty one.
func (d *Digest) Add(fields ...*string) {
	var lenBuf [binary.MaxVarintLen64]byte
	for _, f := range fields {
		if f == nil {
			d.h.Write([]byte{0})
			continue
		}
		d.h.Write([]byte{1})
		n := binary.PutUvarint(lenBuf[:], uint64(len(*f)))
		d.h.Write(lenBuf[:n])
		d.h.Write([]byte(*f))
	}
	d.h.Write([]byte{'\n'})
	d.records++
}

// Records returns how many records were added.
func (d *Digest) Records() int { return d.records }

// Sum returns the hex digest of everything added so far.
func (d *Digest) Sum() string {
	return hex.EncodeToString(d.h.Sum(nil))
}
