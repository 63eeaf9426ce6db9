package testutils

import (
	"time"

	"github.com/itbasis/go-clock"
)

// TestNow is the time the mock clocks start at, midway through the 2024-25 season.
var TestNow = time.Date(2024, time.November, 15, 12, 0, 0, 0, time.UTC)

func NewMockClock() *clock.Mock {
	mock := clock.NewMock()
	mock.Add(TestNow.Sub(mock.Now()))
	return mock
}
