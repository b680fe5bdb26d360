package validation

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mmeshcher/gamestore/internal/model"
)

// Сообщения об ошибках формы оплаты, по одному на каждое правило.
const (
	MsgCardholder = "Please enter the cardholder name."
	MsgCardNumber = "Please enter a valid card number."
	MsgExpiry     = "Please enter a valid expiry date (MM/YY)."
	MsgCVV        = "Please enter a valid CVV (3–4 digits)."
	MsgBilling    = "Please enter your billing address."
	MsgCity       = "Please enter your city."
	MsgZip        = "Please enter your ZIP / postal code."
	MsgCountry    = "Please select your country."
)

var (
	expiryPattern = regexp.MustCompile(`^(\d{2})\s*/\s*(\d{2})$`)
	cvvPattern    = regexp.MustCompile(`^\d{3,4}$`)
)

// Countries — список стран, доступных в форме оплаты.
var Countries = []string{
	"Australia",
	"Canada",
	"France",
	"Germany",
	"India",
	"Japan",
	"Netherlands",
	"Singapore",
	"Spain",
	"United Arab Emirates",
	"United Kingdom",
	"United States",
}

// IsKnownCountry сообщает, входит ли страна в список Countries.
func IsKnownCountry(country string) bool {
	return slices.Contains(Countries, country)
}

// ParseExpiry разбирает срок действия в формате MM/YY и возвращает месяц и полный год.
func ParseExpiry(raw string) (time.Month, int, bool) {
	m := expiryPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return 0, 0, false
	}

	mm, _ := strconv.Atoi(m[1])
	yy, _ := strconv.Atoi(m[2])
	if mm < 1 || mm > 12 {
		return 0, 0, false
	}

	return time.Month(mm), 2000 + yy, true
}

// IsExpiryValid проверяет, что последний момент месяца истечения ещё не наступил относительно now.
func IsExpiryValid(raw string, now time.Time) bool {
	month, year, ok := ParseExpiry(raw)
	if !ok {
		return false
	}

	// Нулевой день следующего месяца — последний день месяца истечения.
	end := time.Date(year, month+1, 0, 23, 59, 59, int(999*time.Millisecond), now.Location())
	return !end.Before(now)
}

// IsValidCVV проверяет, что CVV состоит ровно из 3 или 4 цифр.
func IsValidCVV(cvv string) bool {
	return cvvPattern.MatchString(cvv)
}

// ValidatePayment проверяет форму оплаты и возвращает сводку для сохранения в заказе.
// Проверки идут по порядку, возвращается первая найденная ошибка.
func ValidatePayment(form model.PaymentForm, now time.Time) (model.PaymentSummary, error) {
	cardName := strings.TrimSpace(form.CardName)
	cardNumber := NormalizeCardNumber(form.CardNumber)
	expiry := strings.TrimSpace(form.Expiry)
	cvv := strings.TrimSpace(form.CVV)
	billing := strings.TrimSpace(form.Billing)
	city := strings.TrimSpace(form.City)
	zip := strings.TrimSpace(form.Zip)
	country := strings.TrimSpace(form.Country)

	switch {
	case utf8.RuneCountInString(cardName) < 2:
		return model.PaymentSummary{}, invalid(MsgCardholder)
	case !IsValidCardNumber(cardNumber):
		return model.PaymentSummary{}, invalid(MsgCardNumber)
	case !IsExpiryValid(expiry, now):
		return model.PaymentSummary{}, invalid(MsgExpiry)
	case !IsValidCVV(cvv):
		return model.PaymentSummary{}, invalid(MsgCVV)
	case utf8.RuneCountInString(billing) < 5:
		return model.PaymentSummary{}, invalid(MsgBilling)
	case utf8.RuneCountInString(city) < 2:
		return model.PaymentSummary{}, invalid(MsgCity)
	case utf8.RuneCountInString(zip) < 3:
		return model.PaymentSummary{}, invalid(MsgZip)
	case country == "" || !IsKnownCountry(country):
		return model.PaymentSummary{}, invalid(MsgCountry)
	}

	return model.PaymentSummary{
		Method:         model.PaymentMethodCard,
		Last4:          cardNumber[len(cardNumber)-4:],
		Cardholder:     cardName,
		BillingCity:    city,
		BillingCountry: country,
	}, nil
}

func invalid(message string) error {
	return model.NewError(model.ErrValidation, message)
}
