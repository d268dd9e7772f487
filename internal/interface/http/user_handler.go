package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/aldisetiawan/go-user-address-api/internal/application"
	"github.com/aldisetiawan/go-user-address-api/pkg/pagination"
	"github.com/aldisetiawan/go-user-address-api/pkg/response"
	"github.com/aldisetiawan/go-user-address-api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type idURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type searchQuery struct {
	Q string `form:"q"`
	pagination.Options
}

func (h *UserHandler) List(c *gin.Context) {
	var opts pagination.Options
	if err := c.ShouldBindQuery(&opts); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid query", validation.ToFieldErrors(err))
		return
	}
	users, meta, err := h.Svc.FindAll(c.Request.Context(), opts)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	if meta != nil {
		response.Paginated(c, users, *meta, "users retrieved")
		return
	}
	response.OK(c, users, "users retrieved")
}

func (h *UserHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid query", validation.ToFieldErrors(err))
		return
	}
	users, meta, err := h.Svc.Search(c.Request.Context(), q.Q, q.Options)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Paginated(c, users, meta, "users retrieved")
}

func (h *UserHandler) Get(c *gin.Context) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid user id", validation.ToFieldErrors(err))
		return
	}
	user, err := h.Svc.FindByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, user, "user retrieved")
}

func (h *UserHandler) Create(c *gin.Context) {
	var in application.CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToFieldErrors(err))
		return
	}
	user, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Created(c, user, "user created")
}

func (h *UserHandler) Update(c *gin.Context) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid user id", validation.ToFieldErrors(err))
		return
	}
	var in application.UpdateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToFieldErrors(err))
		return
	}
	user, err := h.Svc.Update(c.Request.Context(), uri.ID, in)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, user, "user updated")
}

func (h *UserHandler) Delete(c *gin.Context) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid user id", validation.ToFieldErrors(err))
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), uri.ID); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

// UploadAvatar accepts a multipart "avatar" file and stores it in object
// storage.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid user id", validation.ToFieldErrors(err))
		return
	}
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "avatar file is required", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	defer func() { _ = f.Close() }()

	user, err := h.Svc.UploadAvatar(c.Request.Context(), uri.ID, fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, user, "avatar uploaded")
}
