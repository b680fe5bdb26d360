package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"strings"
	"unicode/utf16"

	"golang.org/x/crypto/bcrypt"
)

const legacyFallbackPrefix = "fallback_"

// PasswordHasher вычисляет и проверяет односторонние хеши паролей.
//
// Новые хеши всегда bcrypt. При проверке также принимаются два формата,
// которые пишет фронтенд магазина: hex SHA-256 и некриптографический
// "fallback_<djb2>". Последний годится только для демо.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher создаёт хешер с указанной стоимостью bcrypt. Ноль означает bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: max(bcrypt.MinCost, min(bcrypt.MaxCost, cost))}
}

// Digest возвращает bcrypt-хеш пароля.
func (h *PasswordHasher) Digest(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify сравнивает пароль с сохранённым хешем.
func (h *PasswordHasher) Verify(digest, password string) bool {
	switch {
	case strings.HasPrefix(digest, "$2"):
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
	case strings.HasPrefix(digest, legacyFallbackPrefix):
		return subtle.ConstantTimeCompare([]byte(digest), []byte(legacyFallbackDigest(password))) == 1
	case len(digest) == sha256.Size*2:
		sum := sha256.Sum256([]byte(password))
		return subtle.ConstantTimeCompare([]byte(strings.ToLower(digest)), []byte(hex.EncodeToString(sum[:]))) == 1
	default:
		return false
	}
}

// legacyFallbackDigest повторяет djb2-вариант фронтенда: h = (h*33) ^ c по UTF-16 кодам с 32-битным переполнением.
func legacyFallbackDigest(text string) string {
	var h int32 = 5381
	for _, c := range utf16.Encode([]rune(text)) {
		h = h*33 ^ int32(c)
	}
	return legacyFallbackPrefix + strconv.FormatUint(uint64(uint32(h)), 16)
}
