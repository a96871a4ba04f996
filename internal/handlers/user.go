package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/retirepath-backend/internal/requestdata"
	"github.com/yungbote/retirepath-backend/internal/services"
)

const maxAvatarBytes = 8 << 20

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetCurrentUser(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	user, err := uh.userService.GetByID(c.Request.Context(), rd.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateAvatar accepts the image either as a multipart "avatar" file or
// as the raw request body.
func (uh *UserHandler) UpdateAvatar(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())

	var raw []byte
	if file, err := c.FormFile("avatar"); err == nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
			return
		}
		defer f.Close()
		raw, err = io.ReadAll(io.LimitReader(f, maxAvatarBytes))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
			return
		}
	} else {
		var readErr error
		raw, readErr = io.ReadAll(io.LimitReader(c.Request.Body, maxAvatarBytes))
		if readErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read request body"})
			return
		}
	}

	user, err := uh.userService.UpdateAvatarFromImage(c.Request.Context(), rd.UserID, raw)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
