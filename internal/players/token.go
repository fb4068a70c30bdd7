// Package players implements the token/player registry: minting
// opaque bearer tokens and binding them to a (session, dog) pair.
package players

import (
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	mrand "math/rand"

	"github.com/sirupsen/logrus"
)

// Token is a 32-character lowercase hex bearer credential.
type Token string

// NewToken draws a 64-bit value from OS entropy, feeds its decimal
// string through SHA-256, and returns the first 32 hex characters. If
// OS entropy is unavailable it falls back to a non-cryptographic
// draw, logging the fallback — matching the source's
// PlayerToken::get_new, which falls back the same way if hashing
// fails.
func NewToken(log *logrus.Entry) Token {
	v, err := cryptoUint64()
	if err != nil {
		if log != nil {
			log.WithError(err).Error("crypto rand unavailable, falling back to non-cryptographic token")
		}
		return fallbackToken()
	}
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d", v)))
	return Token(hex.EncodeToString(sum[:])[:32])
}

func cryptoUint64() (uint64, error) {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

func fallbackToken() Token {
	return Token(fmt.Sprintf("%016x%016x", mrand.Uint64(), mrand.Uint64())[:32])
}
