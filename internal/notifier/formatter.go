package notifier

import (
	"fmt"
	"html"
	"strings"

	"MarketLens/internal/model"
)

// FormatAnalysisReport formats an analysis report into a Telegram HTML message.
func FormatAnalysisReport(r *model.AnalysisReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n\n", html.EscapeString(r.Symbol), r.AsOf.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("当前价格: %.2f\n", r.CurrentPrice))

	if rsi := r.Indicators.RSI; rsi != nil {
		b.WriteString(fmt.Sprintf("RSI: %s%s\n", num(rsi.Current, 1), label(rsi.Signal)))
	}
	if m := r.Indicators.MACD; m != nil {
		b.WriteString(fmt.Sprintf("MACD: %s | signal %s | hist %s%s\n",
			num(m.MACD, 4), num(m.Signal, 4), num(m.Histogram, 4), label(m.Trend)))
	}
	if bb := r.Indicators.BollingerBands; bb != nil {
		b.WriteString(fmt.Sprintf("BB: %s / %s / %s%s\n",
			num(bb.Upper, 2), num(bb.Middle, 2), num(bb.Lower, 2), label(bb.Position)))
	}
	return b.String()
}

// FormatFailure formats a failed analysis for symbol.
func FormatFailure(symbol string, err error) string {
	return fmt.Sprintf("❌ <b>%s</b> 分析失败: %s", html.EscapeString(symbol), html.EscapeString(err.Error()))
}

func num(v model.Value, prec int) string {
	if !v.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%.*f", prec, v.V)
}

func label[T ~string](p *T) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf(" (<i>%s</i>)", string(*p))
}
