package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/edule/internal/middleware"
	"github.com/xxxsen/edule/internal/model"
	"github.com/xxxsen/edule/internal/pkg/response"
	"github.com/xxxsen/edule/internal/service"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type createUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required,oneof=student tutor"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
	Study    string `json:"study"`
}

type profileUpdateRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Phone    *string `json:"phone"`
	City     *string `json:"city"`
	Study    *string `json:"study"`
}

func (r profileUpdateRequest) fields() map[string]string {
	out := make(map[string]string)
	for name, v := range map[string]*string{
		model.FieldName:     r.Name,
		model.FieldLocation: r.Location,
		model.FieldPhone:    r.Phone,
		model.FieldCity:     r.City,
		model.FieldStudy:    r.Study,
	} {
		if v != nil {
			out[name] = *v
		}
	}
	return out
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	res, err := h.users.Create(c.Request.Context(), &model.User{
		Email:    strings.TrimSpace(req.Email),
		Role:     req.Role,
		Name:     req.Name,
		Location: req.Location,
		Phone:    req.Phone,
		City:     req.City,
		Study:    req.Study,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, res)
}

func (h *UserHandler) IsStudent(c *gin.Context) {
	h.roleProbe(c, model.RoleStudent, "isStudent")
}

func (h *UserHandler) IsTutor(c *gin.Context) {
	h.roleProbe(c, model.RoleTutor, "isTutor")
}

func (h *UserHandler) roleProbe(c *gin.Context, role, key string) {
	ok, err := h.users.HasRole(c.Request.Context(), c.Param("email"), role)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{key: ok})
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, users)
}

// MyProfile lists users with the queried email, defaulting to the caller's.
func (h *UserHandler) MyProfile(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		email = middleware.DecodedEmail(c)
	}
	if email == "" {
		response.Error(c, http.StatusBadRequest, "email required")
		return
	}
	users, err := h.users.ListByEmail(c.Request.Context(), email)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, user)
}

// UpdateProfile serves /myProfileUpdate/:key. :key is an email when it holds
// "@", an object id when it parses as one, and an email otherwise.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	res, err := h.users.UpdateProfile(c.Request.Context(), c.Param("key"), req.fields())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, res)
}
