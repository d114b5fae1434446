package menu

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/coinbar/internal/model"
	"github.com/Veraticus/coinbar/internal/stripe"
)

func fixedClock() time.Time {
	return time.Date(2025, 6, 15, 14, 30, 0, 0, time.Local)
}

func render(f func(r *Renderer)) []string {
	var buf bytes.Buffer
	r := NewRenderer(&buf).WithClock(fixedClock)
	f(r)
	out := strings.TrimRight(buf.String(), "\n")
	return strings.Split(out, "\n")
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		currency string
		want     string
		amount   int64
	}{
		{name: "grouped dollars", currency: "usd", amount: 123456, want: "1,234.56 USD"},
		{name: "zero", currency: "eur", amount: 0, want: "0.00 EUR"},
		{name: "negative", currency: "jpy", amount: -500, want: "-5.00 JPY"},
		{name: "negative grouped", currency: "usd", amount: -123456, want: "-1,234.56 USD"},
		{name: "sub-unit", currency: "gbp", amount: 7, want: "0.07 GBP"},
		{name: "large", currency: "usd", amount: 1234567890, want: "12,345,678.90 USD"},
		{name: "already upper", currency: "CHF", amount: 150, want: "1.50 CHF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.amount, tt.currency))
		})
	}
}

func TestNoCredentialMenu(t *testing.T) {
	lines := render(func(r *Renderer) { r.NoCredential() })

	assert.Equal(t, []string{
		"⚠ Stripe",
		"---",
		"No API key in GNOME Keyring",
		"Run in terminal: | font=monospace size=10",
		"secret-tool store --label='Stripe API Key' service stripe type api-key | font=monospace size=10",
	}, lines)
}

func TestEmptyTotalsMenu(t *testing.T) {
	lines := render(func(r *Renderer) { r.Totals(model.Totals{}) })

	assert.Equal(t, []string{
		"💰 0.00",
		"---",
		"No transactions today",
		"---",
		"Open Stripe Dashboard | href=https://dashboard.stripe.com",
		"Refresh | refresh=true",
	}, lines)
}

func TestTotalsMenu(t *testing.T) {
	lines := render(func(r *Renderer) {
		r.Totals(model.Totals{"USD": 123456, "EUR": 5000})
	})

	assert.Equal(t, []string{
		"💰 50.00 EUR | 1,234.56 USD",
		"---",
		"Gross Volume — 15.06.2025 | size=12",
		"  50.00 EUR | size=11",
		"  1,234.56 USD | size=11",
		"---",
		"Open Stripe Dashboard | href=https://dashboard.stripe.com",
		"Refresh | refresh=true",
	}, lines)
}

func TestTotalsMenuSingleCurrency(t *testing.T) {
	lines := render(func(r *Renderer) {
		r.Totals(model.Totals{"USD": 9900})
	})

	require.NotEmpty(t, lines)
	assert.Equal(t, "💰 99.00 USD", lines[0])
}

func TestFetchErrorStatusMenu(t *testing.T) {
	lines := render(func(r *Renderer) {
		r.FetchError(&stripe.StatusError{StatusCode: 429, Status: "429 Too Many Requests"})
	})

	assert.Equal(t, []string{
		"⚠ Stripe",
		"---",
		"HTTP Error 429: Too Many Requests",
		"---",
		"Open Stripe Dashboard | href=https://dashboard.stripe.com",
		"Refresh | refresh=true",
	}, lines)
}

func TestFetchErrorGenericMenu(t *testing.T) {
	lines := render(func(r *Renderer) {
		r.FetchError(errors.New("failed to decode response: unexpected EOF"))
	})

	assert.Equal(t, []string{
		"⚠ Stripe",
		"---",
		"Error: failed to decode response: unexpected EOF",
		"---",
		"Open Stripe Dashboard | href=https://dashboard.stripe.com",
		"Refresh | refresh=true",
	}, lines)
}

func TestWrappedStatusErrorStillNamed(t *testing.T) {
	wrapped := errors.Join(errors.New("fetch failed"), &stripe.StatusError{StatusCode: 500, Status: "500 Internal Server Error"})
	lines := render(func(r *Renderer) { r.FetchError(wrapped) })

	assert.Contains(t, lines, "HTTP Error 500: Internal Server Error")
}
