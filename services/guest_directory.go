package services

import (
	"fmt"

	"stayhub/errors"
	"stayhub/models"

	"gorm.io/gorm"
)

// GuestDirectory là collaborator quản lý khách. Core chỉ cần một guestRef
// opaque, idempotent theo email.
type GuestDirectory interface {
	FindOrCreateGuest(email, name, phone string) (string, error)
}

// DBGuestDirectory là implementation mặc định lưu trong cùng database
type DBGuestDirectory struct {
	db *gorm.DB
}

func NewDBGuestDirectory(db *gorm.DB) *DBGuestDirectory {
	return &DBGuestDirectory{db: db}
}

// FindOrCreateGuest tìm khách theo email, tạo mới nếu chưa có.
// Gọi nhiều lần với cùng email luôn trả về cùng một guestRef.
func (d *DBGuestDirectory) FindOrCreateGuest(email, name, phone string) (string, error) {
	if email == "" {
		return "", errors.NewAppError(errors.ErrCodeRequiredField, "Email khách không được để trống", nil)
	}

	var guest models.Guest
	err := d.db.Where("email = ?", email).
		Attrs(models.Guest{Name: name, PhoneNumber: phone}).
		FirstOrCreate(&guest, models.Guest{Email: email}).Error
	if err != nil {
		return "", errors.NewAppError(errors.ErrCodeDBError, "Không thể tạo khách", err)
	}
	return fmt.Sprintf("guest-%d", guest.ID), nil
}
