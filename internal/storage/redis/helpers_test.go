package redis

import "time"

func testTime(h, m, sec int) time.Time {
	return time.Date(2024, 1, 1, h, m, sec, 0, time.UTC)
}
