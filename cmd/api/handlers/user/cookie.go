package handlers

import "time"

func maxAge(expire time.Time) int {
	sec := int(time.Until(expire).Seconds())
	if sec < 1 {
		return 1
	}
	return sec
}
