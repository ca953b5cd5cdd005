package common

import "errors"

// 공통 비즈니스 에러
var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrRateLimited   = errors.New("rate limited")
	ErrUpstreamError = errors.New("upstream service error")
)
