package rng

import (
	"crypto/hmac"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/rand/v2"
)

// ProvablyFair поток HMAC-SHA256(serverSeed, "clientSeed:nonce:block").
// Каждый блок даёт 32 байта, которые отдаются по 8 байт.
type ProvablyFair struct {
	serverSeed string
	clientSeed string
	nonce      uint64

	block  uint64
	buf    [sha256.Size]byte
	offset int
}

// NewProvablyFair источник для раунда. Одинаковые сиды и nonce дают одинаковый раунд
func NewProvablyFair(serverSeed, clientSeed string, nonce uint64) Source {
	return rand.New(newProvablyFair(serverSeed, clientSeed, nonce))
}

func newProvablyFair(serverSeed, clientSeed string, nonce uint64) *ProvablyFair {
	return &ProvablyFair{
		serverSeed: serverSeed,
		clientSeed: clientSeed,
		nonce:      nonce,
		offset:     sha256.Size,
	}
}

func (p *ProvablyFair) Uint64() uint64 {
	if p.offset+8 > sha256.Size {
		p.next()
	}
	v := binary.BigEndian.Uint64(p.buf[p.offset : p.offset+8])
	p.offset += 8
	return v
}

func (p *ProvablyFair) next() {
	mac := hmac.New(sha256.New, []byte(p.serverSeed))
	_, _ = fmt.Fprintf(mac, "%s:%d:%d", p.clientSeed, p.nonce, p.block)
	copy(p.buf[:], mac.Sum(nil))
	p.block++
	p.offset = 0
}

// Commitment sha256 хэш серверного сида, публикуется до раунда
func Commitment(serverSeed string) string {
	h := sha256.Sum256([]byte(serverSeed))
	return hex.EncodeToString(h[:])
}

// Verify проверяет, что раскрытый сид соответствует опубликованному хэшу
func Verify(serverSeed, commitment string) bool {
	return hmac.Equal([]byte(Commitment(serverSeed)), []byte(commitment))
}

// NewServerSeed случайный серверный сид, 32 байта hex
func NewServerSeed() string {
	var b [32]byte
	_, _ = crand.Read(b[:])
	return hex.EncodeToString(b[:])
}
