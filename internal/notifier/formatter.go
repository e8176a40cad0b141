package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"InvestTracker/internal/calculator"
	"InvestTracker/internal/client"
	"InvestTracker/internal/model"
	"InvestTracker/internal/networth"

	"github.com/dustin/go-humanize"
)

// FormatPercent renders one window result: "+10.00%", "-3.46%" or "N/A".
func FormatPercent(r model.PerformanceResult) string { return r.String() }

// FormatPerformanceReport formats a ticker's performance for a Telegram message.
func FormatPerformanceReport(tp *model.TickerPerformance, smaPeriod int) string {
	var b strings.Builder
	symbol := html.EscapeString(strings.ToUpper(tp.Ticker.TickerSymbol))

	cur, ok := tp.Current()
	if !ok {
		b.WriteString(fmt.Sprintf("📊 <b>%s</b>\n\nNo price history yet.\n", symbol))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n\n", symbol, cur.Date))
	b.WriteString(fmt.Sprintf("Current price: %s\n", humanize.CommafWithDigits(cur.Price.InexactFloat64(), 2)))

	for _, r := range tp.Results {
		line := fmt.Sprintf("  %-3s %8s", r.Label, FormatPercent(r))
		if r.Available() {
			line += fmt.Sprintf("  (since %s)", r.Reference.Date)
		}
		b.WriteString(line + "\n")
	}

	if high, low, err := calculator.PriceRange(tp.Series, model.Window1Y.Days); err == nil {
		b.WriteString(fmt.Sprintf("\n52w range: %s – %s", humanize.CommafWithDigits(low.InexactFloat64(), 2), humanize.CommafWithDigits(high.InexactFloat64(), 2)))
		if pos, err := calculator.RangePosition(cur.Price, high, low); err == nil {
			b.WriteString(fmt.Sprintf(" (%.0f%%)", pos.InexactFloat64()*100))
		}
		b.WriteString("\n")
	}
	if smaPeriod > 0 {
		if sma, err := calculator.CalculateSeriesSMA(tp.Series, smaPeriod); err == nil {
			b.WriteString(fmt.Sprintf("SMA(%d): %s\n", smaPeriod, humanize.CommafWithDigits(sma.InexactFloat64(), 2)))
		}
	}
	b.WriteString(fmt.Sprintf("%d samples, fetched %s\n", len(tp.Series), tp.FetchedAt.Format("2006-01-02 15:04")))
	return b.String()
}

// FormatPerformanceTable renders several tickers as a compact digest.
func FormatPerformanceTable(items []*model.TickerPerformance) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📈 <b>Watchlist</b> | %s\n\n<pre>", time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("%-6s", ""))
	for _, w := range model.DefaultWindows() {
		b.WriteString(fmt.Sprintf(" %8s", w.Label))
	}
	b.WriteString("\n")
	for _, tp := range items {
		b.WriteString(fmt.Sprintf("%-6s", html.EscapeString(strings.ToUpper(tp.Ticker.TickerSymbol))))
		for _, w := range model.DefaultWindows() {
			cell := "N/A"
			if r, ok := tp.Result(w.Label); ok {
				cell = FormatPercent(r)
			}
			b.WriteString(fmt.Sprintf(" %8s", cell))
		}
		b.WriteString("\n")
	}
	b.WriteString("</pre>")
	return b.String()
}

// FormatNetWorth formats a net worth summary.
func FormatNetWorth(s networth.Summary, currency string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("💼 <b>Net worth</b> | %s\n\n", time.Now().Format("2006-01-02")))

	if len(s.Accounts) > 0 {
		b.WriteString("<b>Accounts</b>\n")
		for _, a := range s.Accounts {
			line := fmt.Sprintf("  %s: %s", html.EscapeString(a.Name), networth.FormatMoney(a.Owned, currency))
			if !a.Unvested.IsZero() {
				line += fmt.Sprintf(" (+%s unvested)", networth.FormatMoney(a.Unvested, currency))
			}
			if !a.AsOf.IsZero() {
				line += fmt.Sprintf(" as of %s", a.AsOf)
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}
	if len(s.Properties) > 0 {
		b.WriteString("<b>Properties</b>\n")
		for _, p := range s.Properties {
			b.WriteString(fmt.Sprintf("  %s: %s − %s = %s\n", html.EscapeString(p.Name),
				networth.FormatMoney(p.Valuation, currency),
				networth.FormatMoney(p.Mortgage, currency),
				networth.FormatMoney(p.Equity, currency)))
		}
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("Investments: %s\n", networth.FormatMoney(s.Investments, currency)))
	b.WriteString(fmt.Sprintf("Real estate equity: %s\n", networth.FormatMoney(s.Equity, currency)))
	b.WriteString(fmt.Sprintf("<b>Total: %s</b>\n", networth.FormatMoney(s.Total, currency)))
	return b.String()
}

// FormatError turns a backend failure into a user-facing message.
func FormatError(action string, err error) string {
	msg := client.UserMessage(err)
	if client.Classify(err) == client.KindUnknown {
		msg = err.Error()
	}
	return fmt.Sprintf("❌ %s failed: %s", action, html.EscapeString(msg))
}
