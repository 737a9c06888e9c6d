package routes

import (
	"stayhub/controllers"
	middlewares "stayhub/middleware"
	"stayhub/services"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, manager *services.ReservationManager, m *melody.Melody) {

	propertyController := controllers.NewPropertyController(db)
	roomTypeController := controllers.NewRoomTypeController(db, redisCli, manager)
	roomController := controllers.NewRoomController(db)
	pricingController := controllers.NewPricingController(db)
	availabilityController := controllers.NewAvailabilityController(manager)
	reservationController := controllers.NewReservationController(manager)
	calendarController := controllers.NewCalendarController(services.NewCalendarService(db, manager, redisCli))

	v1 := router.Group("/api/v1")

	v1.GET("/properties", propertyController.GetProperties)
	v1.POST("/properties", middlewares.AuthMiddleware(1, 2), propertyController.CreateProperty)
	v1.GET("/properties/:id", propertyController.GetPropertyDetail)
	v1.PUT("/propertySync", middlewares.AuthMiddleware(2), propertyController.ChangeSyncStatus)

	v1.GET("/roomTypes", roomTypeController.GetRoomTypes)
	v1.POST("/roomTypes", middlewares.AuthMiddleware(1, 2), roomTypeController.CreateRoomType)
	v1.GET("/roomTypes/:id", roomTypeController.GetRoomTypeDetail)
	v1.PUT("/roomTypeUpdate", middlewares.AuthMiddleware(1, 2), roomTypeController.UpdateRoomType)
	v1.GET("/roomTypeSearch", roomTypeController.SearchRoomTypes)

	v1.GET("/rooms", roomController.GetRooms)
	v1.POST("/roomsGenerate", middlewares.AuthMiddleware(1, 2), roomController.GenerateRooms)
	v1.PUT("/roomStatus", middlewares.AuthMiddleware(1, 2), roomController.ChangeRoomStatus)
	v1.DELETE("/rooms/:id", middlewares.AuthMiddleware(2), roomController.DeleteRoom)
	v1.GET("/roomsAvailable", roomController.GetAvailableRooms)

	v1.GET("/pricingRules", pricingController.GetRules)
	v1.POST("/pricingRules", middlewares.AuthMiddleware(1, 2), pricingController.CreateRule)
	v1.PUT("/pricingRuleUpdate", middlewares.AuthMiddleware(1, 2), pricingController.UpdateRule)
	v1.DELETE("/pricingRules/:id", middlewares.AuthMiddleware(1, 2), pricingController.DeleteRule)
	v1.GET("/resolveRate", pricingController.ResolveRate)
	v1.GET("/pricingConflicts", pricingController.GetRuleConflicts)

	v1.GET("/availability", availabilityController.GetAvailability)
	v1.POST("/availabilityInit", middlewares.AuthMiddleware(1, 2), availabilityController.InitAvailability)
	v1.POST("/availabilityBlock", middlewares.AuthMiddleware(1, 2), availabilityController.BlockDates)
	v1.POST("/availabilityUnblock", middlewares.AuthMiddleware(1, 2), availabilityController.UnblockDates)

	v1.GET("/reservations", reservationController.GetReservations)
	v1.POST("/reservations", reservationController.CreateReservation)
	v1.GET("/reservations/:id", reservationController.GetReservationDetail)
	v1.PUT("/reservationStatus", middlewares.AuthMiddleware(1, 2), reservationController.ChangeReservationStatus)
	v1.PUT("/reservationMove", middlewares.AuthMiddleware(1, 2), reservationController.MoveReservation)
	v1.PUT("/reservationAssign", middlewares.AuthMiddleware(1, 2), reservationController.AssignRoom)
	v1.PUT("/reservationUnassign/:id", middlewares.AuthMiddleware(1, 2), reservationController.UnassignRoom)
	v1.PUT("/reservationAutoAssign/:id", middlewares.AuthMiddleware(1, 2), reservationController.AutoAssignRoom)
	v1.PUT("/paymentStatus", reservationController.SetPaymentStatus)

	v1.GET("/calendar", calendarController.GetCalendar)

	//ws
	v1.GET("/test-broadcast", func(c *gin.Context) {
		message := []byte(`{"type":"calendar.refresh"}`)
		m.Broadcast(message)
		c.String(200, "Broadcast message sent!")
	})
}
