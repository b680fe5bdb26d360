// Package payment имитирует платёжный процессор: фиксированная задержка, после которой платёж всегда проходит.
package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/gamestore/internal/model"
)

// DefaultDelay — задержка обработки платежа по умолчанию.
const DefaultDelay = 850 * time.Millisecond

// Processor имитирует задержку внешнего платёжного процессора.
type Processor struct {
	delay time.Duration
	now   func() time.Time
}

// Charge описывает результат списания.
type Charge struct {
	Approved    bool
	Last4       string
	Amount      decimal.Decimal
	ProcessedAt time.Time
}

// NewProcessor создаёт процессор с указанной задержкой. Отрицательная задержка считается нулевой.
func NewProcessor(delay time.Duration) *Processor {
	return &Processor{
		delay: max(delay, 0),
		now:   time.Now,
	}
}

// Delay возвращает настроенную задержку.
func (p *Processor) Delay() time.Duration {
	return p.delay
}

// Charge ждёт настроенную задержку и одобряет платёж.
// Ожидание прерывается отменой контекста, в этом случае платёж не проводится.
func (p *Processor) Charge(ctx context.Context, summary model.PaymentSummary, amount decimal.Decimal) (*Charge, error) {
	if p == nil {
		return nil, fmt.Errorf("payment processor not configured")
	}

	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("charge card: %w", ctx.Err())
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("charge card: %w", err)
	}

	return &Charge{
		Approved:    true,
		Last4:       summary.Last4,
		Amount:      amount,
		ProcessedAt: p.now(),
	}, nil
}
