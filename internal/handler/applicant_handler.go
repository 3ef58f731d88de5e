package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/edule/internal/pkg/response"
	"github.com/xxxsen/edule/internal/service"
)

const alreadyAppliedMessage = service.AlreadyAppliedMessage

type ApplicantHandler struct {
	applicants *service.ApplicantService
}

func NewApplicantHandler(applicants *service.ApplicantService) *ApplicantHandler {
	return &ApplicantHandler{applicants: applicants}
}

func (h *ApplicantHandler) Apply(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		return
	}
	res, err := h.applicants.Apply(c.Request.Context(), doc)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, res)
}

func (h *ApplicantHandler) List(c *gin.Context) {
	docs, err := h.applicants.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, docs)
}
