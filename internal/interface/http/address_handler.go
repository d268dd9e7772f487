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

type AddressHandler struct {
	Svc    *application.AddressService
	Logger *logrus.Logger
}

func NewAddressHandler(svc *application.AddressService, logger *logrus.Logger) *AddressHandler {
	return &AddressHandler{Svc: svc, Logger: logger}
}

type addressListQuery struct {
	UserID string `form:"userId" binding:"omitempty,uuid"`
	pagination.Options
}

func (h *AddressHandler) List(c *gin.Context) {
	var q addressListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid query", validation.ToFieldErrors(err))
		return
	}
	addresses, meta, err := h.Svc.List(c.Request.Context(), q.UserID, q.Options)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	if meta != nil {
		response.Paginated(c, addresses, *meta, "addresses retrieved")
		return
	}
	response.OK(c, addresses, "addresses retrieved")
}

func (h *AddressHandler) Get(c *gin.Context) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid address id", validation.ToFieldErrors(err))
		return
	}
	address, err := h.Svc.FindByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, address, "address retrieved")
}

func (h *AddressHandler) Create(c *gin.Context) {
	var in application.CreateAddressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToFieldErrors(err))
		return
	}
	address, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Created(c, address, "address created")
}

func (h *AddressHandler) Update(c *gin.Context) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid address id", validation.ToFieldErrors(err))
		return
	}
	var in application.UpdateAddressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToFieldErrors(err))
		return
	}
	address, err := h.Svc.Update(c.Request.Context(), uri.ID, in)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, address, "address updated")
}

func (h *AddressHandler) Delete(c *gin.Context) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid address id", validation.ToFieldErrors(err))
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), uri.ID); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

// SetDefault promotes the address to the authenticated user's default one.
func (h *AddressHandler) SetDefault(c *gin.Context) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid address id", validation.ToFieldErrors(err))
		return
	}
	address, err := h.Svc.SetAsDefault(c.Request.Context(), uri.ID, c.GetString("userID"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, address, "default address updated")
}
