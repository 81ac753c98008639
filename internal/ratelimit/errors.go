package ratelimit

import "errors"

var (
	ErrRateLimited          = errors.New("too many attempts, try again later")
	ErrLimiterUnavailable   = errors.New("rate limiter unavailable")
	ErrInvalidLimiterConfig = errors.New("invalid rate limiter configuration")
)
