// Package model содержит доменные сущности магазина игр.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// User представляет зарегистрированного покупателя.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session описывает единственную активную сессию процесса.
type Session struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"createdAt"`
}

// Game описывает позицию каталога.
type Game struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Genre       string          `json:"genre"`
	Rating      float64         `json:"rating"`
	Description string          `json:"description"`
	AccentA     string          `json:"accentA"`
	AccentB     string          `json:"accentB"`
}

// CartLine описывает строку корзины пользователя.
type CartLine struct {
	GameID  string    `json:"gameId"`
	Qty     int       `json:"qty"`
	AddedAt time.Time `json:"addedAt"`
}

// Границы количества одной позиции в корзине.
const (
	MinQty = 1
	MaxQty = 99
)

// ClampQty приводит количество к допустимому диапазону [MinQty, MaxQty].
func ClampQty(qty int) int {
	return max(MinQty, min(MaxQty, qty))
}

// CartViewLine — строка корзины, соединённая с каталогом.
type CartViewLine struct {
	GameID    string          `json:"gameId"`
	Qty       int             `json:"qty"`
	AddedAt   time.Time       `json:"addedAt"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Genre     string          `json:"genre"`
	Rating    float64         `json:"rating"`
	LineTotal decimal.Decimal `json:"lineTotal"`
	AccentA   string          `json:"accentA"`
	AccentB   string          `json:"accentB"`
}

// CartTotals содержит расчёт корзины: строки, итог и число единиц товара.
type CartTotals struct {
	Lines []CartViewLine  `json:"lines"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// PaymentForm содержит сырые поля формы оплаты.
type PaymentForm struct {
	CardName   string `json:"cardName"`
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"exp"`
	CVV        string `json:"cvv"`
	Billing    string `json:"billing"`
	City       string `json:"city"`
	Zip        string `json:"zip"`
	Country    string `json:"country"`
}

// PaymentMethodCard — единственный поддерживаемый способ оплаты.
const PaymentMethodCard = "card"

// PaymentSummary — сохраняемая сводка оплаты. Полный номер карты и CVV сюда не попадают.
type PaymentSummary struct {
	Method         string `json:"method"`
	Last4          string `json:"last4"`
	Cardholder     string `json:"cardholder"`
	BillingCity    string `json:"billingCity"`
	BillingCountry string `json:"billingCountry"`
}

// OrderItem — снимок позиции каталога на момент оформления заказа.
type OrderItem struct {
	GameID string          `json:"gameId"`
	Title  string          `json:"title"`
	Price  decimal.Decimal `json:"price"`
	Qty    int             `json:"qty"`
}

// Order описывает оформленный заказ. После создания не изменяется.
type Order struct {
	OrderID   string          `json:"orderId"`
	CreatedAt time.Time       `json:"createdAt"`
	Total     decimal.Decimal `json:"total"`
	Items     []OrderItem     `json:"items"`
	Payment   PaymentSummary  `json:"payment"`
}

// LastSuccess — одноразовая отметка об успешном заказе для баннера истории заказов.
type LastSuccess struct {
	OrderID   string          `json:"orderId"`
	CreatedAt time.Time       `json:"createdAt"`
	Total     decimal.Decimal `json:"total"`
}
