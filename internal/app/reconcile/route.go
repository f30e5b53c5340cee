package reconcile

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	rg.GET("/parents/:kind/:id/attachments", handler.ListAttachments)
	rg.POST("/parents/:kind/:id/attachments", handler.SubmitAttachments)
	rg.DELETE("/parents/:kind/:id/attachments", handler.PurgeAttachments)
}
