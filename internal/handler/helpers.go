package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/edule/internal/middleware"
	"github.com/xxxsen/edule/internal/model"
	appErr "github.com/xxxsen/edule/internal/pkg/errors"
	"github.com/xxxsen/edule/internal/pkg/response"
)

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case appErr.IsAlreadyApplied(err):
		response.Success(c, model.Rejection{Acknowledged: false, Message: alreadyAppliedMessage})
	case errors.Is(err, appErr.ErrForbidden):
		response.Forbidden(c)
	case errors.Is(err, appErr.ErrInvalidID):
		response.Error(c, http.StatusBadRequest, "invalid id")
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, http.StatusBadRequest, "invalid request")
	default:
		logutil.GetLogger(c.Request.Context()).Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("email", middleware.DecodedEmail(c)),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, "internal error")
	}
}

func bindDocument(c *gin.Context) (model.Document, bool) {
	var doc model.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return nil, false
	}
	return doc, true
}
