package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/edule/internal/pkg/response"
	"github.com/xxxsen/edule/internal/service"
)

type ConnectHandler struct {
	connects *service.ConnectService
}

func NewConnectHandler(connects *service.ConnectService) *ConnectHandler {
	return &ConnectHandler{connects: connects}
}

func (h *ConnectHandler) Create(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		return
	}
	res, err := h.connects.Create(c.Request.Context(), doc)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, res)
}
