package get_bookings

import (
	"strings"
)

// ToServiceFilter формирует фильтр статуса из query параметра (пустой параметр - без фильтра)
func ToServiceFilter(statusStr string) *string {
	status := strings.TrimSpace(statusStr)
	if status == "" {
		return nil
	}
	return &status
}
