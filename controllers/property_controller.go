package controllers

import (
	"strconv"

	"stayhub/models"
	"stayhub/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PropertyController struct {
	DB *gorm.DB
}

func NewPropertyController(db *gorm.DB) *PropertyController {
	return &PropertyController{DB: db}
}

func (ctrl *PropertyController) CreateProperty(c *gin.Context) {
	var property models.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}
	if property.Name == "" {
		response.BadRequest(c, "Tên property không được để trống")
		return
	}

	if err := ctrl.DB.Create(&property).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, property)
}

func (ctrl *PropertyController) GetProperties(c *gin.Context) {
	var properties []models.Property
	if err := ctrl.DB.Preload("RoomTypes").Find(&properties).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.SuccessWithTotal(c, properties, len(properties))
}

func (ctrl *PropertyController) GetPropertyDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	var property models.Property
	if err := ctrl.DB.Preload("RoomTypes.Rooms").First(&property, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}
	response.Success(c, property)
}

// ChangeSyncStatus bật/tắt chế độ đồng bộ PMS ngoài. Khi bật, mọi mutation
// giá và availability cục bộ trên property này bị từ chối.
func (ctrl *PropertyController) ChangeSyncStatus(c *gin.Context) {
	var request struct {
		PropertyID uint   `json:"propertyId" binding:"required"`
		Synced     bool   `json:"synced"`
		SyncSource string `json:"syncSource"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
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

	property.Synced = request.Synced
	property.SyncSource = request.SyncSource
	if !request.Synced {
		property.SyncSource = ""
	}
	if err := ctrl.DB.Save(&property).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, property)
}
