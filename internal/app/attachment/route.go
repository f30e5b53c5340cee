package attachment

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	rg.GET("/attachments", handler.GetAttachments)
	rg.GET("/attachments/:id/url", handler.GetDownloadURL)
	rg.PATCH("/attachments/:id", handler.UpdateDescription)
}
