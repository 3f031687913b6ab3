package tracker

import (
	"fmt"
	"strings"
)

// FormatAlert renders a price-drop notification for one product. Both prices
// are shown with two fractional digits. The message is handed to the
// publisher as-is; delivery (chat message, etc.) belongs to the consumer on
// the other side of the stream.
func FormatAlert(title string, previous, current float64) string {
	var b strings.Builder
	b.WriteString("📉 PRICE DROP!\n\n")
	fmt.Fprintf(&b, "📦 %s\n\n", title)
	fmt.Fprintf(&b, "Was: R$ %.2f\n", previous)
	fmt.Fprintf(&b, "Now: R$ %.2f\n", current)
	return b.String()
}
