package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Сообщения об ошибках регистрации и входа.
const (
	MsgName        = "Please enter a display name (at least 2 characters)."
	MsgEmail       = "Please enter a valid email address."
	MsgPassword    = "Password must be at least 8 characters."
	MsgCredentials = "Please enter a valid email and password."
)

const (
	minNameLength     = 2
	minPasswordLength = 8
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail приводит email к виду, в котором он хранится: без пробелов по краям и в нижнем регистре.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsEmail выполняет синтаксическую проверку формы email.
func IsEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// ValidateSignup проверяет уже нормализованные имя, email и пароль.
func ValidateSignup(name, email, password string) error {
	switch {
	case utf8.RuneCountInString(name) < minNameLength:
		return invalid(MsgName)
	case !IsEmail(email):
		return invalid(MsgEmail)
	case utf8.RuneCountInString(password) < minPasswordLength:
		return invalid(MsgPassword)
	}
	return nil
}

// ValidateLogin проверяет форму входа до обращения к хранилищу.
func ValidateLogin(email, password string) error {
	if !IsEmail(email) || password == "" {
		return invalid(MsgCredentials)
	}
	return nil
}
