package booking

import (
	"fmt"
	"net/url"
	"strings"

	"bookalink/internal/model"
)

type Method struct {
	Key   model.PaymentMethod `json:"key"`
	Name  string              `json:"name"`
	Emoji string              `json:"emoji"`
	Color string              `json:"color"`
}

var methods = []Method{
	{Key: model.PaymentVenmo, Name: "Venmo", Emoji: "💚", Color: "#008CFF"},
	{Key: model.PaymentCashApp, Name: "Cash App", Emoji: "💵", Color: "#00D632"},
	{Key: model.PaymentPayPal, Name: "PayPal", Emoji: "💙", Color: "#0070BA"},
	{Key: model.PaymentZelle, Name: "Zelle", Emoji: "🏦", Color: "#6D1ED4"},
}

// Action is what the buyer does next: open URL, or follow Instructions.
type Action struct {
	Method       model.PaymentMethod `json:"method"`
	Amount       string              `json:"amount"`
	URL          string              `json:"url,omitempty"`
	Instructions string              `json:"instructions,omitempty"`
}

// DeepLink builds the payment app URL for method. Zelle has none.
func DeepLink(method model.PaymentMethod, handle, amount, note string) string {
	handle = strings.TrimSpace(handle)

	switch method {
	case model.PaymentVenmo:
		q := url.Values{}
		q.Set("txn", "pay")
		q.Set("amount", amount)
		q.Set("note", note)
		return "https://venmo.com/" + url.PathEscape(strings.TrimPrefix(handle, "@")) + "?" + q.Encode()
	case model.PaymentCashApp:
		return "https://cash.app/$" + url.PathEscape(strings.TrimPrefix(handle, "$")) + "/" + amount
	case model.PaymentPayPal:
		local, _, _ := strings.Cut(handle, "@")
		return "https://paypal.me/" + url.PathEscape(local) + "/" + amount
	}
	return ""
}

func ZelleInstructions(email, amount, itemName string) string {
	return fmt.Sprintf("Please send $%s to %s via Zelle\n\nNote: %s", amount, email, itemName)
}
