package usecase

import "time"

// CostFit is exported for testing
var CostFit = costFit

// SetNow replaces the clock used for CreatedAt, for testing
func (uc *RequestUseCase) SetNow(now func() time.Time) {
	uc.now = now
}
