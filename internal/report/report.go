// Package report renders the shareable Arabic summary of a trip.
package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/mmynk/qitta/internal/models"
	"github.com/mmynk/qitta/internal/settlement"
)

// Currency is appended to every amount.
const Currency = "ريال"

// closing is printed at the end of every report.
const closing = `📝 *ملاحظة:*
الفائض سيكون محفوظًا في الصندوق، ويُستخدم لتغطية أي نقص لاحق بإذن الله. ومن باب العدل، من لم يدفع القطية حتى الآن، نأمل منه التحويل إلى حسابي عبر STC Pay لإضافته مع الفائض.

ومن عايدة انشاء الله
نلتقي بكم في جمعات أخرى

🌹`

// Title is the share title of a trip's report.
func Title(trip *models.Trip) string {
	return "تقرير " + trip.Name
}

// Generate renders the report. The output only depends on the trip.
func Generate(trip *models.Trip) string {
	s := settlement.Summarize(trip)

	var b strings.Builder
	b.WriteString("السلام عليكم\n\n")
	fmt.Fprintf(&b, "🌴 *تقرير: %s* 🌴\n", trip.Name)
	if trip.Location != "" {
		fmt.Fprintf(&b, "📍 المكان: %s\n", trip.Location)
	}
	if trip.TripDate != "" {
		fmt.Fprintf(&b, "🗓️ التاريخ: %s\n", trip.TripDate)
	}
	if trip.TripTime != "" {
		fmt.Fprintf(&b, "⏰ الوقت: %s\n", trip.TripTime)
	}

	b.WriteString("\n👥 *الأعداد:*")
	fmt.Fprintf(&b, "\n• الكلي: %d", s.Participants)
	fmt.Fprintf(&b, "\n• 👨 كبار: %d", s.Adults)
	fmt.Fprintf(&b, "\n• 👶 صغار: %d\n", s.Children)

	b.WriteString("\nالمبالغ المجموعة:\n")
	fmt.Fprintf(&b, "• %s 🍀 مجموع القطيات كاملة\n", Amount(s.BaseFees))
	for _, sup := range s.Supporters {
		fmt.Fprintf(&b, "• %s 🍀 دعم من %s\n", Amount(sup.Amount), sup.Name)
	}

	b.WriteString("\n🟩 *المجموع الكلي للقطيات والدعم:*\n")
	fmt.Fprintf(&b, "%s تم جمعها\n", Amount(s.TotalPaid))

	b.WriteString("\nالمصروفات:\n")
	if len(trip.Expenses) == 0 {
		b.WriteString("• لا يوجد مصاريف مسجلة\n")
	}
	for _, e := range trip.Expenses {
		fmt.Fprintf(&b, "• %s: 🔻 %s\n", e.Description, Amount(e.Amount))
	}

	b.WriteString("\n🟥 *المجموع الكلي للمصروفات:*\n")
	fmt.Fprintf(&b, "%s\n", Amount(s.TotalExpenses))

	b.WriteString("\n🟩 *الفائض:*\n")
	fmt.Fprintf(&b, "%s\n", Amount(s.NetBalance))

	if len(s.PaymentMethods) > 0 {
		b.WriteString("\n💳 *طرق الدفع:*\n")
		for _, m := range s.PaymentMethods {
			fmt.Fprintf(&b, "• %s: %s\n", m.Method, Amount(m.Amount))
		}
	}

	b.WriteString("\n")
	b.WriteString(closing)
	return b.String()
}

// Amount formats a value with thousands separators, at most two decimals,
// and the currency suffix. The value stays a decimal throughout.
func Amount(v decimal.Decimal) string {
	v = v.Round(2)
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Abs()
	}

	whole := v.Truncate(0)
	s := sign + humanize.Comma(whole.IntPart())
	if frac := v.Sub(whole); !frac.IsZero() {
		// "0.50" -> ".5"
		s += strings.TrimRight(strings.TrimPrefix(frac.StringFixed(2), "0"), "0")
	}
	return s + " " + Currency
}
