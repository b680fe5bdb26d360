package model

import "errors"

// Виды ошибок, которые операции магазина возвращают вызывающему коду.
// Сравнивать следует через errors.Is.
var (
	// ErrValidation возвращается при некорректном вводе пользователя.
	ErrValidation = errors.New("validation failed")
	// ErrConflict возвращается при регистрации уже занятого email.
	ErrConflict = errors.New("conflict")
	// ErrAuth возвращается при неверном пароле.
	ErrAuth = errors.New("authentication failed")
	// ErrNotFound возвращается, если аккаунт или позиция каталога не найдены.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart возвращается при попытке оформить заказ с пустой корзиной.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrStoreCorruption описывает нечитаемое значение в хранилище. Наружу не выходит.
	ErrStoreCorruption = errors.New("stored value is corrupted")
	// ErrCheckoutInProgress возвращается при повторной отправке оплаты до завершения предыдущей.
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	// ErrUnauthenticated возвращается, если активной сессии нет.
	ErrUnauthenticated = errors.New("not signed in")
)

// Error связывает вид ошибки с сообщением, которое показывается пользователю.
type Error struct {
	Kind    error
	Message string
}

// NewError создаёт ошибку указанного вида с сообщением для пользователя.
func NewError(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Message возвращает текст ошибки, пригодный для показа пользователю.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
