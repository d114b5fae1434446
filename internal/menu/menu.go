// Package menu renders the line-oriented menu protocol consumed by the
// top-bar host. Each line is a menu item, optionally followed by
// " | key=value" directives the host interprets, and "---" lines separate
// menu sections. Directives are opaque pass-through: nothing here parses
// them.
package menu

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Veraticus/coinbar/internal/model"
	"github.com/Veraticus/coinbar/internal/stripe"
)

const (
	warningHeader = "⚠ Stripe"
	moneyBagIcon  = "\U0001f4b0"
	dashboardURL  = "https://dashboard.stripe.com"
)

// Renderer writes menu lines to the host.
type Renderer struct {
	w   io.Writer
	now func() time.Time
}

// NewRenderer creates a Renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{
		w:   w,
		now: time.Now,
	}
}

// WithClock overrides the clock used for the dated title line.
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	r.now = now
	return r
}

// FormatAmount renders a minor-units amount as a thousands-grouped decimal
// with two fraction digits followed by the upper-cased currency code, e.g.
// FormatAmount(123456, "usd") == "1,234.56 USD".
func FormatAmount(amountMinor int64, currency string) string {
	amount := float64(amountMinor) / 100
	return humanize.FormatFloat("#,###.##", amount) + " " + strings.ToUpper(currency)
}

// NoCredential renders the instructional menu shown when no API key is
// registered in the keyring. No fetch happens in this state and no action
// lines are appended.
func (r *Renderer) NoCredential() {
	r.item(warningHeader)
	r.separator()
	r.item("No API key in GNOME Keyring")
	r.item("Run in terminal:", "font=monospace size=10")
	r.item("secret-tool store --label='Stripe API Key' service stripe type api-key", "font=monospace size=10")
}

// Totals renders the day's gross volume: a header combining every
// currency's formatted amount, a dated title, and one line per currency in
// lexicographic order. With no qualifying transactions it renders the
// zero-amount header and a "no transactions" body instead.
func (r *Renderer) Totals(totals model.Totals) {
	if len(totals) == 0 {
		r.item(moneyBagIcon + " 0.00")
		r.separator()
		r.item("No transactions today")
		r.actions()
		return
	}

	parts := make([]string, 0, len(totals))
	for _, currency := range totals.Currencies() {
		parts = append(parts, FormatAmount(totals[currency], currency))
	}

	r.item(moneyBagIcon + " " + strings.Join(parts, " | "))
	r.separator()
	r.item(fmt.Sprintf("Gross Volume — %s", r.now().Format("02.01.2006")), "size=12")
	for _, currency := range totals.Currencies() {
		r.item("  "+FormatAmount(totals[currency], currency), "size=11")
	}
	r.actions()
}

// FetchError renders the warning menu for a failed fetch. HTTP-level
// failures name the status code and reason; everything else shows the
// error's description.
func (r *Renderer) FetchError(err error) {
	r.item(warningHeader)
	r.separator()

	var statusErr *stripe.StatusError
	if errors.As(err, &statusErr) {
		r.item(statusErr.Error())
	} else {
		r.item(fmt.Sprintf("Error: %v", err))
	}
	r.actions()
}

// actions appends the fixed trailing section present in every
// non-credential state.
func (r *Renderer) actions() {
	r.separator()
	r.item("Open Stripe Dashboard", "href="+dashboardURL)
	r.item("Refresh", "refresh=true")
}

func (r *Renderer) separator() {
	fmt.Fprintln(r.w, "---")
}

func (r *Renderer) item(text string, directives ...string) {
	if len(directives) == 0 {
		fmt.Fprintln(r.w, text)
		return
	}
	fmt.Fprintln(r.w, text+" | "+strings.Join(directives, " "))
}
