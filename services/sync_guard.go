package services

import (
	"stayhub/errors"
	"stayhub/models"

	"gorm.io/gorm"
)

// SyncGuard chặn ghi giá/availability cục bộ lên entity do PMS bên ngoài
// quản lý. Bản ghi synced chỉ đọc, mọi mutation trả về ReadOnlyEntity.
type SyncGuard struct {
	db *gorm.DB
}

func NewSyncGuard(db *gorm.DB) *SyncGuard {
	return &SyncGuard{db: db}
}

// EnsureWritable trả về lỗi nếu room type thuộc property đang sync ngoài
func (g *SyncGuard) EnsureWritable(roomTypeID uint) error {
	var roomType models.RoomType
	if err := g.db.Preload("Property").First(&roomType, roomTypeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy loại phòng", errors.ErrRoomTypeNotFound)
		}
		return errors.NewAppError(errors.ErrCodeDBError, "Không thể đọc loại phòng", err)
	}
	if roomType.Property.Synced {
		return errors.NewAppError(errors.ErrCodeReadOnlyEntity,
			"Property đang được đồng bộ từ "+roomType.Property.SyncSource+", không thể sửa giá/availability tại đây",
			errors.ErrReadOnlyEntity)
	}
	return nil
}
