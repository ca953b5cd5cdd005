package domain

import "errors"

// 도메인 에러
var (
	ErrInvalidSelection = errors.New("invalid unit selection")
	ErrInvalidProduct   = errors.New("invalid product")
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidTheme     = errors.New("unsupported theme")
)
