// Package hasher produces short content digests for the optimizer's info
// and debug output.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/cespare/xxhash/v2"
)

const prefix = "xxh64:"

// Digest computes the xxHash64 of data and returns it as a printable
// string, e.g. "xxh64:ef46db3751d8e999". 64 bits is plenty for telling two
// versions of one file apart; this is not an integrity check.
func Digest(data []byte) string {
	return format(xxhash.Sum64(data))
}

// DigestReader computes the digest from a reader, streaming.
func DigestReader(r io.Reader) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return format(h.Sum64()), nil
}

func format(sum uint64) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], sum)
	return prefix + hex.EncodeToString(b[:])
}
