package notify

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rl1809/storefront-cart/internal/port"
	"github.com/rl1809/storefront-cart/internal/requestid"
)

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(log.New(&buf, "", 0))

	ctx := requestid.With(context.Background(), "req-7")
	n.Notify(ctx, port.Notification{
		Operation: "add_product",
		ProductID: 3,
		Message:   "Requested quantity is out of stock",
		Err:       errors.New("out of stock"),
	})

	assert.Equal(t, "cart: add_product product=3 request=req-7: Requested quantity is out of stock: out of stock\n", buf.String())
}

func TestLogNotifier_NoCause(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(log.New(&buf, "", 0))

	n.Notify(requestid.With(context.Background(), "r"), port.Notification{Operation: "remove_product", ProductID: 1, Message: "Error removing product"})

	assert.Equal(t, "cart: remove_product product=1 request=r: Error removing product\n", buf.String())
}
