package folder

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	rg.GET("/folders", handler.ListFolders)
	rg.POST("/folders", handler.CreateFolder)
	rg.PATCH("/folders/:id", handler.UpdateFolder)
	rg.DELETE("/folders/:id", handler.DeleteFolder)
	rg.GET("/folders/:id/files", handler.ListFiles)
	rg.POST("/folders/:id/files", handler.AttachFile)
	rg.DELETE("/folders/:id/files/:attachmentId", handler.DetachFile)
}
