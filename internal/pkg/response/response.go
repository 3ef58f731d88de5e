package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ForbiddenMessage is the fixed body message for every rejected token or role.
const ForbiddenMessage = "Forbidden Access"

type messageBody struct {
	Message string `json:"message"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, messageBody{Message: message})
}

func Forbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, messageBody{Message: ForbiddenMessage})
}
