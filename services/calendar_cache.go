package services

import (
	"context"
	"fmt"

	"stayhub/utils"

	"github.com/redis/go-redis/v9"
)

// Cache calendar vô hiệu theo version: mỗi room type có một counter
// calendar:ver:<id>, version nằm trong cache key nên INCR một lần là mọi
// key cũ của room type đó thành rác, TTL sẽ tự dọn.

func calendarVersionKey(roomTypeID uint) string {
	return fmt.Sprintf("calendar:ver:%d", roomTypeID)
}

// calendarVersion đọc version hiện tại, thiếu Redis hoặc lỗi đều coi là 0
func calendarVersion(ctx context.Context, rdb *redis.Client, roomTypeID uint) int64 {
	if rdb == nil {
		return 0
	}
	version, err := rdb.Get(ctx, calendarVersionKey(roomTypeID)).Int64()
	if err != nil {
		return 0
	}
	return version
}

// BumpCalendarVersion vô hiệu toàn bộ cache calendar của một room type.
// Best-effort: Redis lỗi chỉ ghi log, mutation vẫn thành công.
func BumpCalendarVersion(ctx context.Context, rdb *redis.Client, roomTypeID uint) {
	if rdb == nil {
		return
	}
	if err := rdb.Incr(ctx, calendarVersionKey(roomTypeID)).Err(); err != nil {
		utils.LogError("không vô hiệu được cache calendar của room type %d: %v", roomTypeID, err)
	}
}
