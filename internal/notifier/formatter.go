package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"StockAnalyzer/internal/analyzer"
	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/recorder"
)

const dateLayout = "2006-01-02"

// FormatReport formats a full analysis into a Telegram message.
func FormatReport(rep *analyzer.Report) string {
	var b strings.Builder
	q := rep.Quote

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n", html.EscapeString(rep.Ticker), html.EscapeString(q.CompanyName)))
	b.WriteString(fmt.Sprintf("Price: %.2f (%+.2f%%)\n", q.CurrentPrice, q.ChangePercent))
	b.WriteString(fmt.Sprintf("52W: %.2f ~ %.2f\n\n", q.Low52Week, q.High52Week))

	b.WriteString(fmt.Sprintf("%s <b>%s</b> (strength %.0f)\n", labelIcon(rep.Signal.Label), rep.Signal.Label, rep.Signal.Strength))
	b.WriteString(fmt.Sprintf("RSI: %s | vs MA20: %s\n", ptr(rep.Signal.RSI, "%.2f"), ptr(rep.Signal.PriceVsMA20, "%+.2f%%")))

	b.WriteString("\n")
	if rep.ForecastErr != nil || rep.Forecast == nil {
		b.WriteString("🔮 Forecast unavailable\n")
	} else {
		writeForecast(&b, rep.Forecast)
	}
	return b.String()
}

// FormatPrediction formats a standalone forecast.
func FormatPrediction(p *analyzer.Prediction) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<b>%s</b>\n", html.EscapeString(p.Ticker)))
	writeForecast(&b, p.Forecast)
	return b.String()
}

func writeForecast(b *strings.Builder, f *model.ForecastResult) {
	b.WriteString(fmt.Sprintf("🔮 <b>%d-day forecast</b> (%s, confidence %.2f%%)\n", len(f.Points), f.Model, f.Confidence))
	for _, pt := range f.Points {
		b.WriteString(fmt.Sprintf("  %s  %s\n", pt.Date.Format(dateLayout), ptr(pt.Price, "%.2f")))
	}
}

// FormatDigest summarizes one watchlist scan. failed lists the symbols whose
// analysis returned an error.
func FormatDigest(reports []*analyzer.Report, failed []string, at time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 <b>Watchlist</b> | %s\n\n", at.Format("2006-01-02 15:04")))
	for _, rep := range reports {
		b.WriteString(fmt.Sprintf("%s <b>%s</b> %.2f (%+.2f%%) %s %.0f",
			labelIcon(rep.Signal.Label), html.EscapeString(rep.Ticker),
			rep.Quote.CurrentPrice, rep.Quote.ChangePercent, rep.Signal.Label, rep.Signal.Strength))
		if rep.Forecast != nil && len(rep.Forecast.Points) > 0 {
			lastPt := rep.Forecast.Points[len(rep.Forecast.Points)-1]
			b.WriteString(fmt.Sprintf(" → %s", ptr(lastPt.Price, "%.2f")))
		}
		b.WriteString("\n")
	}
	if len(reports) == 0 {
		b.WriteString("No symbols analyzed.\n")
	}
	if len(failed) > 0 {
		b.WriteString(fmt.Sprintf("\n⚠️ Failed: %s\n", html.EscapeString(strings.Join(failed, ", "))))
	}
	return b.String()
}

// FormatHistory lists recorded analyses for ticker, newest first.
func FormatHistory(ticker string, records []recorder.AnalysisRecord) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗂 <b>%s history</b>\n\n", html.EscapeString(ticker)))
	if len(records) == 0 {
		b.WriteString("No analyses recorded.\n")
		return b.String()
	}
	for _, r := range records {
		b.WriteString(fmt.Sprintf("%s  %.2f  %s %.0f  RSI %s  [%s]\n",
			r.Time.Format("2006-01-02 15:04"), r.Price, r.SignalLabel, r.SignalStrength,
			ptr(r.RSI, "%.1f"), r.Source))
	}
	return b.String()
}

// FormatHelp lists the supported commands.
func FormatHelp() string {
	var b strings.Builder
	b.WriteString("🤖 <b>Commands</b>\n\n")
	b.WriteString("/signal &lt;ticker|name&gt; - full analysis\n")
	b.WriteString("/predict &lt;ticker|name&gt; [days] - price forecast (1-30 days)\n")
	b.WriteString("/scan - run the watchlist now\n")
	b.WriteString("/history &lt;ticker&gt; - recent analyses\n")
	b.WriteString("/help - this message\n")
	return b.String()
}

// FormatError renders a failed command.
func FormatError(msg string) string {
	return "❌ " + html.EscapeString(msg)
}

func labelIcon(l model.SignalLabel) string {
	switch l {
	case model.SignalStrongBuy:
		return "🟢🟢"
	case model.SignalBuy:
		return "🟢"
	case model.SignalSell:
		return "🔴"
	case model.SignalStrongSell:
		return "🔴🔴"
	default:
		return "⚪"
	}
}

func ptr(v *float64, format string) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf(format, *v)
}
