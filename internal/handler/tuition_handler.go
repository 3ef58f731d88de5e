package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/edule/internal/pkg/response"
	"github.com/xxxsen/edule/internal/service"
)

type TuitionHandler struct {
	tuitions *service.TuitionService
}

func NewTuitionHandler(tuitions *service.TuitionService) *TuitionHandler {
	return &TuitionHandler{tuitions: tuitions}
}

func (h *TuitionHandler) Create(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		return
	}
	res, err := h.tuitions.Create(c.Request.Context(), doc)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, res)
}

func (h *TuitionHandler) List(c *gin.Context) {
	docs, err := h.tuitions.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, docs)
}

func (h *TuitionHandler) Get(c *gin.Context) {
	docs, err := h.tuitions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, docs)
}
