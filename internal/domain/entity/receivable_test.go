package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReceivable_MarkPaid_EsIdempotente(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	r := &Receivable{Status: ReceivablePending, DueDate: now.AddDate(0, 0, 1)}

	assert.True(t, r.MarkPaid(now))
	assert.Equal(t, ReceivablePaid, r.Status)
	assert.Equal(t, now, *r.PaidAt)

	later := now.Add(time.Hour)
	assert.False(t, r.MarkPaid(later))
	assert.Equal(t, now, *r.PaidAt, "una segunda aplicación no cambia la fecha de pago")
}

func TestReceivable_IsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	vencida := &Receivable{Status: ReceivablePending, DueDate: now.Add(-time.Minute)}
	futura := &Receivable{Status: ReceivablePending, DueDate: now.Add(time.Minute)}
	pagada := &Receivable{Status: ReceivablePaid, DueDate: now.Add(-time.Hour)}

	assert.True(t, vencida.IsOverdue(now))
	assert.False(t, futura.IsOverdue(now))
	assert.False(t, pagada.IsOverdue(now))
}

func TestProduct_IsLowStock(t *testing.T) {
	assert.True(t, (&Product{Stock: 4, MinStock: 5}).IsLowStock())
	assert.False(t, (&Product{Stock: 5, MinStock: 5}).IsLowStock())
}

func TestPasswordResetToken_Usable(t *testing.T) {
	now := time.Now()
	tok := &PasswordResetToken{ExpiresAt: now.Add(time.Minute)}
	assert.True(t, tok.Usable(now))

	tok.UsedAt = &now
	assert.False(t, tok.Usable(now))

	expired := &PasswordResetToken{ExpiresAt: now.Add(-time.Second)}
	assert.False(t, expired.Usable(now))
}
