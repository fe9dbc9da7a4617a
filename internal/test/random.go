package test

import (
	"math/rand"
	"sync"
	"time"
)

const orderSuffixAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomOrderSuffix returns a pseudo-random uppercase alphanumeric string of
// the given length, matching the order number suffix alphabet.
func RandomOrderSuffix(length int) string {
	if length <= 0 {
		length = 8
	}
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = orderSuffixAlphabet[randomIntn(len(orderSuffixAlphabet))]
	}
	return string(buf)
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}
