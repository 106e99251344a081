package checkout

import (
	"errors"
	"fmt"
)

type OrderItem struct {
	ItemUID  string
	Price    int64
	Quantity int
	OrderUID string
}

// PartialCheckoutError means the order was created but its items could not be attached.
// The order is left behind on the server without items and the cart still holds them.
type PartialCheckoutError struct {
	OrderUID string
	Err      error
}

func (e *PartialCheckoutError) Error() string {
	return fmt.Sprintf("order %s created but items not attached: %s", e.OrderUID, e.Err)
}

func (e *PartialCheckoutError) Unwrap() error {
	return e.Err
}

func IsPartialCheckout(err error) bool {
	var partial *PartialCheckoutError
	return errors.As(err, &partial)
}

// PartialOrderUID returns the uid of the order that was left without items.
func PartialOrderUID(err error) (string, bool) {
	var partial *PartialCheckoutError
	if errors.As(err, &partial) {
		return partial.OrderUID, true
	}
	return "", false
}
