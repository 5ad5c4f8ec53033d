package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"masseria/internal/app/confirm"
	"masseria/internal/app/dto"
)

// ConfirmHandler resolves a payment session after the checkout redirect.
// The poll budget lives in the poller; the handler just reports the terminal
// state with 200 so the front end can branch on the body.
type ConfirmHandler struct {
	Poller *confirm.Poller
}

func (h ConfirmHandler) Status(c *gin.Context) {
	res := h.Poller.Run(c.Request.Context(), c.Param("sessionID"))
	c.JSON(http.StatusOK, dto.MapConfirmation(res))
}

var _ ConfirmHTTP = ConfirmHandler{}
