package engine

import (
	"fmt"
	"strings"
)

// Customer summaries stay in Turkish; the widget reads them to the caller
// verbatim.

const unknownCustomerSummary = "Müşteri numaranızı maalesef bulamadım. " +
	"Lütfen müşteri numaranızı tekrar söyler misiniz?"

func approvedSummary(name string, amount, payment float64, termMonths int) string {
	return fmt.Sprintf("%s, kredi başvurunuz ön onay aldı. "+
		"Önerilen kredi tutarı: %.2f TL, vade: %d ay, taksit yaklaşık: %.2f TL. "+
		"Nihai onay için kimlik doğrulaması tamamlanacaktır.",
		name, amount, termMonths, payment)
}

func rejectedSummary(name string, reasons []string, suggested float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, maalesef bu aşamada kredi başvurunuz ön onay alamadı. "+
		"Nedenler: %s.", name, strings.Join(reasons, ", "))
	if suggested > 0 {
		fmt.Fprintf(&b, " Değerlendirebileceğimiz azami tutar: %.2f TL.", suggested)
	}
	b.WriteString(" Kredi skoru veya genel risk göstergeleri iyileştiğinde tekrar deneyebilirsiniz.")
	return b.String()
}

func payoffNote(penalty, payoff float64) string {
	return fmt.Sprintf("Erken kapama cezası %.2f TL dahil toplam kapama tutarı %.2f TL.",
		penalty, payoff)
}
