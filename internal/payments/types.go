package payments

// PaymentStatusPaid is the session payment_status Stripe reports once the
// checkout has been completed and captured.
const PaymentStatusPaid = "paid"

// CheckoutSessionParams describes one fixed-price checkout attempt.
type CheckoutSessionParams struct {
	AmountCents       int64
	Currency          string
	ProductName       string
	CustomerEmail     string
	ClientReferenceID string
	SuccessURL        string
	CancelURL         string
	Metadata          map[string]string
}

// CheckoutSession is the subset of Stripe's session object the app reads.
type CheckoutSession struct {
	ID                string            `json:"id"`
	URL               string            `json:"url"`
	PaymentStatus     string            `json:"payment_status"`
	PaymentIntent     string            `json:"payment_intent"`
	CustomerEmail     string            `json:"customer_email"`
	ClientReferenceID string            `json:"client_reference_id"`
	AmountTotal       int64             `json:"amount_total"`
	Currency          string            `json:"currency"`
	Metadata          map[string]string `json:"metadata"`
}

// apiError mirrors Stripe's error envelope.
type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
