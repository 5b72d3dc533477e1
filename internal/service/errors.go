package service

import "errors"

var (
	ErrInvalidQuantity    = errors.New("invalid sale quantity")
	ErrInvalidPrice       = errors.New("invalid sale price")
	ErrStockUpdate        = errors.New("stock update failed")
	ErrSaleNotRecorded    = errors.New("sale row not recorded")
	ErrCompensationFailed = errors.New("stock compensation failed")
	ErrUnknownCategory    = errors.New("unknown category")
	ErrNotFound           = errors.New("not found")
)
