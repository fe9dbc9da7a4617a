package usecase

import (
	cryptorand "crypto/rand"
	mathrand "math/rand/v2"
	"time"
)

const (
	orderNumberAlphabet  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	orderNumberSuffixLen = 8
)

// NewOrderNumber builds an externally visible order identifier: the date as
// YYMMDD followed by an 8-character random base36 suffix. The store's unique
// constraint on order_number is the backstop against the rare collision.
func NewOrderNumber(now time.Time) string {
	raw := make([]byte, orderNumberSuffixLen)
	if _, err := cryptorand.Read(raw); err != nil {
		for i := range raw {
			raw[i] = byte(mathrand.IntN(256))
		}
	}

	suffix := make([]byte, orderNumberSuffixLen)
	for i, b := range raw {
		suffix[i] = orderNumberAlphabet[int(b)%len(orderNumberAlphabet)]
	}
	return now.Format("060102") + "-" + string(suffix)
}
