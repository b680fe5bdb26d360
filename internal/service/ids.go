package service

import (
	"crypto/rand"
	"time"

	"github.com/google/uuid"
)

// Алфавит без легко путаемых символов (нет I, O, 0, 1).
const idAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randomID(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)

	// 256 делится на длину алфавита нацело, распределение равномерное.
	for i, b := range buf {
		buf[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return string(buf)
}

func newUserID() string {
	return "u_" + randomID(12)
}

func newOrderID(at time.Time) string {
	return "GS-" + at.UTC().Format("20060102") + "-" + randomID(6)
}

func newSessionToken() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return "demo_" + uuid.NewString()
	}
	return "demo_" + v7.String()
}
