package model

// PaymentHandles are the peer-to-peer accounts a seller accepts money on.
// An empty handle means the method is not offered.
type PaymentHandles struct {
	VenmoUsername   string `gorm:"size:255" json:"venmo_username"`
	CashappUsername string `gorm:"size:255" json:"cashapp_username"`
	PaypalEmail     string `gorm:"size:255" json:"paypal_email"`
	ZelleEmail      string `gorm:"size:255" json:"zelle_email"`
}

type PaymentMethod string

const (
	PaymentVenmo   PaymentMethod = "venmo"
	PaymentCashApp PaymentMethod = "cashapp"
	PaymentPayPal  PaymentMethod = "paypal"
	PaymentZelle   PaymentMethod = "zelle"
)

// Handle returns the seller's handle for method, empty when not configured.
func (h PaymentHandles) Handle(method PaymentMethod) string {
	switch method {
	case PaymentVenmo:
		return h.VenmoUsername
	case PaymentCashApp:
		return h.CashappUsername
	case PaymentPayPal:
		return h.PaypalEmail
	case PaymentZelle:
		return h.ZelleEmail
	}
	return ""
}
