package usage

import "errors"

// ErrInsufficientTokens is returned when a client has no tokens remaining for the current month.
var ErrInsufficientTokens = errors.New("insufficient tokens")

// DefaultTokens is the number of questions granted per client per month.
const DefaultTokens = 100

// monthLayout is the format of last_reset_month.
const monthLayout = "2006-01"
