package utils

import (
	"fmt"
	"strings"

	"github.com/TharakaGamage830/OmniDash/pkg/models"
)

// FormatQuotationMessage renders the WhatsApp quotation text for a cart. Used
// when a quotation is logged without a client-supplied message.
func FormatQuotationMessage(items []models.OrderItem, total float64) string {
	var b strings.Builder
	b.WriteString("*Quotation Request from Anu Creation*\n\n")

	for i, item := range items {
		fmt.Fprintf(&b, "%d. *%s* (%s)\n", i+1, item.Name, item.ProductCode)
		fmt.Fprintf(&b, "   Qty: %d x Rs.%.2f\n", item.Quantity, item.Price)
		fmt.Fprintf(&b, "   Subtotal: Rs.%.2f\n\n", float64(item.Quantity)*item.Price)
	}

	fmt.Fprintf(&b, "*Total Amount: Rs.%.2f*\n\n", total)
	b.WriteString("Please confirm availability and shipping details.")

	return b.String()
}
