package activity

import "github.com/gin-gonic/gin"

// RouterGroupActivity wires the merged activity feed endpoint.
func RouterGroupActivity(router *gin.RouterGroup) {
	router.GET("", GetActivity)
}
