package service

import "errors"

var (
	ErrOutOfStock          = errors.New("out of stock")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrItemNotFound        = errors.New("item not found")
	ErrAddProductFailed    = errors.New("add product failed")
	ErrRemoveProductFailed = errors.New("remove product failed")
	ErrUpdateAmountFailed  = errors.New("update amount failed")
	ErrLoadCart            = errors.New("load cart failed")
)

const (
	MsgOutOfStock     = "Requested quantity is out of stock"
	MsgAddFailed      = "Error adding product"
	MsgRemoveFailed   = "Error removing product"
	MsgUpdateFailed   = "Error changing product quantity"
	msgUnexpectedFail = "Unexpected cart error"
)

// Message maps a cart operation error to the text shown to the user.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrOutOfStock), errors.Is(err, ErrInvalidAmount):
		return MsgOutOfStock
	case errors.Is(err, ErrAddProductFailed):
		return MsgAddFailed
	case errors.Is(err, ErrRemoveProductFailed), errors.Is(err, ErrItemNotFound):
		return MsgRemoveFailed
	case errors.Is(err, ErrUpdateAmountFailed):
		return MsgUpdateFailed
	default:
		return msgUnexpectedFail
	}
}
