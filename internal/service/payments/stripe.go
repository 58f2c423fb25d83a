package payments

import "github.com/stripe/stripe-go/v76/client"

// NewStripeIntents returns the PaymentIntents client for a secret key.
func NewStripeIntents(secretKey string) IntentCreator {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return sc.PaymentIntents
}
