// Package validation содержит функции валидации входных данных магазина.
package validation

import "strings"

// Допустимая длина номера карты в цифрах.
const (
	minCardDigits = 12
	maxCardDigits = 19
)

// luhnDoubled[d] — цифра d, удвоенная по правилу Луна (2d или 2d-9).
var luhnDoubled = [10]int{0, 2, 4, 6, 8, 1, 3, 5, 7, 9}

// NormalizeCardNumber удаляет из номера карты всё, кроме цифр.
func NormalizeCardNumber(raw string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
}

// IsValidCardNumber проверяет номер карты в том виде, в каком его ввёл покупатель:
// разделители отбрасываются, оставшихся цифр должно быть от 12 до 19,
// контрольная сумма Луна должна делиться на 10.
func IsValidCardNumber(raw string) bool {
	digits := NormalizeCardNumber(raw)
	if len(digits) < minCardDigits || len(digits) > maxCardDigits {
		return false
	}
	return luhnSum(digits)%10 == 0
}

// luhnSum считает сумму Луна по строке из ASCII-цифр.
// Удваивается каждая вторая цифра, считая от последней.
func luhnSum(digits string) int {
	doubled := len(digits) % 2

	sum := 0
	for i := 0; i < len(digits); i++ {
		d := int(digits[i] - '0')
		if i%2 == doubled {
			d = luhnDoubled[d]
		}
		sum += d
	}
	return sum
}
