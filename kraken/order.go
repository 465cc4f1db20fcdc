package kraken

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"krakenrest/logger"
)

// OrderRequiredParams must all be present before an order is sent.
var OrderRequiredParams = []string{"pair", "type", "ordertype", "volume"}

// ValidateOrder checks an AddOrder parameter set. Missing fields, and
// volume or prices that are not positive decimals, are refused.
func ValidateOrder(opts Params) error {
	if err := RequireParams(opts, OrderRequiredParams...); err != nil {
		return err
	}
	for _, key := range []string{"volume", "price", "price2"} {
		raw, ok := opts[key]
		if !ok {
			continue
		}
		// price fields may carry a +/- or % relative marker; only validate
		// plain absolute values.
		if key != "volume" && !isPlainNumber(raw) {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return &ConfigurationError{Reason: fmt.Sprintf("%s %q is not a decimal number", key, raw), Err: err}
		}
		if !d.IsPositive() {
			return &ConfigurationError{Reason: fmt.Sprintf("%s must be positive, got %s", key, d.String())}
		}
	}
	return nil
}

func isPlainNumber(s string) bool {
	if s == "" {
		return false
	}
	switch s[0] {
	case '+', '-', '#':
		return false
	}
	return s[len(s)-1] != '%'
}

// AddOrder places an order. The parameter set is validated first; if it is
// incomplete the order is refused, nothing is sent, cb is never called and
// the returned error is a *ConfigurationError.
func (c *Client) AddOrder(ctx context.Context, opts Params, cb Callback) error {
	if err := ValidateOrder(opts); err != nil {
		c.log.WithComponent("kraken_client").WithFields(logger.Fields{
			"method": "AddOrder",
		}).WithError(err).Error("order refused")
		return err
	}
	c.Call(ctx, "AddOrder", opts, Private, cb)
	return nil
}
