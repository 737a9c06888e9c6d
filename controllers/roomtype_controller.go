package controllers

import (
	"log"
	"strconv"
	"time"

	"stayhub/config"
	"stayhub/dto"
	"stayhub/models"
	"stayhub/response"
	"stayhub/services"
	"stayhub/validator"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var roomTypesCacheKey = "roomtypes:all"

type RoomTypeController struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Search  *services.RoomTypeSearchService
	Guard   *services.SyncGuard
	Manager *services.ReservationManager
}

func NewRoomTypeController(db *gorm.DB, rdb *redis.Client, manager *services.ReservationManager) *RoomTypeController {
	return &RoomTypeController{
		DB:      db,
		Redis:   rdb,
		Search:  services.NewRoomTypeSearchService(db),
		Guard:   services.NewSyncGuard(db),
		Manager: manager,
	}
}

func (ctrl *RoomTypeController) invalidateCache() {
	if ctrl.Redis == nil {
		return
	}
	if err := services.DeleteFromRedis(config.Ctx, ctrl.Redis, roomTypesCacheKey); err != nil {
		log.Printf("Lỗi khi xóa cache loại phòng: %v", err)
	}
}

func (ctrl *RoomTypeController) CreateRoomType(c *gin.Context) {
	var request dto.CreateRoomTypeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}
	if err := validator.ValidateRoomType(&request); err != nil {
		handleServiceError(c, err)
		return
	}

	var property models.Property
	if err := ctrl.DB.First(&property, request.PropertyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	roomType := models.RoomType{
		PropertyID:   request.PropertyID,
		Name:         request.Name,
		Quantity:     request.Quantity,
		BasePrice:    request.BasePrice,
		MaxOccupancy: request.MaxOccupancy,
		Description:  request.Description,
	}
	if err := ctrl.DB.Create(&roomType).Error; err != nil {
		response.ServerError(c)
		return
	}

	ctrl.invalidateCache()
	response.Success(c, roomType)
}

func (ctrl *RoomTypeController) GetRoomTypes(c *gin.Context) {
	var roomTypes []models.RoomType

	// Cache roomtypes:all chứa mọi property nên chỉ dùng cho query không lọc
	useCache := ctrl.Redis != nil && c.Query("propertyId") == ""

	if useCache {
		if err := services.GetFromRedis(config.Ctx, ctrl.Redis, roomTypesCacheKey, &roomTypes); err == nil && len(roomTypes) > 0 {
			response.SuccessWithTotal(c, roomTypes, len(roomTypes))
			return
		}
	}

	tx := ctrl.DB.Model(&models.RoomType{})
	if propertyIDStr := c.Query("propertyId"); propertyIDStr != "" {
		if propertyID, err := strconv.Atoi(propertyIDStr); err == nil {
			tx = tx.Where("property_id = ?", propertyID)
		}
	}
	if err := tx.Find(&roomTypes).Error; err != nil {
		response.ServerError(c)
		return
	}

	if useCache {
		if err := services.SetToRedis(config.Ctx, ctrl.Redis, roomTypesCacheKey, roomTypes, 10*time.Minute); err != nil {
			log.Printf("Lỗi khi lưu cache loại phòng: %v", err)
		}
	}
	response.SuccessWithTotal(c, roomTypes, len(roomTypes))
}

func (ctrl *RoomTypeController) GetRoomTypeDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	var roomType models.RoomType
	if err := ctrl.DB.Preload("Rooms").Preload("Property").First(&roomType, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}
	response.Success(c, roomType)
}

// UpdateRoomType sửa số lượng/giá cơ bản. Property đang sync ngoài thì giá
// và quantity là read-only.
func (ctrl *RoomTypeController) UpdateRoomType(c *gin.Context) {
	var request dto.UpdateRoomTypeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if err := ctrl.Guard.EnsureWritable(request.ID); err != nil {
		handleServiceError(c, err)
		return
	}

	var roomType models.RoomType
	if err := ctrl.DB.First(&roomType, request.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	if request.Quantity > 0 && request.Quantity != roomType.Quantity {
		// Đổi quantity phải dồn chênh lệch vào ledger các ngày đã có bản ghi,
		// nếu không available = quantity − active − blocked sẽ lệch
		if err := ctrl.Manager.ChangeQuantity(roomType.ID, request.Quantity); err != nil {
			handleServiceError(c, err)
			return
		}
		roomType.Quantity = request.Quantity
	}

	if request.Name != "" {
		roomType.Name = request.Name
	}
	if request.BasePrice > 0 {
		roomType.BasePrice = request.BasePrice
	}
	if request.MaxOccupancy > 0 {
		roomType.MaxOccupancy = request.MaxOccupancy
	}
	if request.Description != "" {
		roomType.Description = request.Description
	}

	if err := ctrl.DB.Save(&roomType).Error; err != nil {
		response.ServerError(c)
		return
	}

	ctrl.invalidateCache()
	response.Success(c, roomType)
}

// SearchRoomTypes tìm loại phòng theo tên gần đúng, không phân biệt dấu
func (ctrl *RoomTypeController) SearchRoomTypes(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "Thiếu tham số q")
		return
	}

	propertyID := 0
	if propertyIDStr := c.Query("propertyId"); propertyIDStr != "" {
		if parsed, err := strconv.Atoi(propertyIDStr); err == nil {
			propertyID = parsed
		}
	}

	limit := 5
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	results, err := ctrl.Search.Search(query, uint(propertyID), limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithTotal(c, results, len(results))
}
