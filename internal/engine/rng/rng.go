// Package rng источники случайности движка. Движок никогда не обращается к глобальному генератору:
// источник передаётся в каждый раунд, что даёт воспроизводимость при одинаковом сиде.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Source равномерные случайные числа
type Source interface {
	// IntN число в [0, n), n > 0
	IntN(n int) int
	// Float64 число в [0, 1)
	Float64() float64
}

// NewSeeded детерминированный PCG поток, для тестов, симулятора и повтора раундов
func NewSeeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewCrypto источник на crypto/rand
func NewCrypto() Source {
	return rand.New(cryptoSource{})
}

type cryptoSource struct{}

func (cryptoSource) Uint64() uint64 {
	var b [8]byte
	_, _ = crand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}
