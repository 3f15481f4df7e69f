package controllers

import (
	"net/http"

	"github.com/community-board/api-go/apperrors"
	"github.com/community-board/api-go/services"
	"github.com/gin-gonic/gin"
)

// ValidationController answers sign-up form availability checks.
type ValidationController struct {
	Users services.UserService
}

func NewValidationController(users services.UserService) *ValidationController {
	return &ValidationController{Users: users}
}

func (vc *ValidationController) CheckEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		respondError(c, apperrors.Validation(codeInvalidParameter, "email is required"))
		return
	}

	available, err := vc.Users.CheckEmail(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": !available})
}

func (vc *ValidationController) CheckNickname(c *gin.Context) {
	nickname := c.Query("nickname")
	if nickname == "" {
		respondError(c, apperrors.Validation(codeInvalidParameter, "nickname is required"))
		return
	}

	available, err := vc.Users.CheckNickname(c.Request.Context(), nickname)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": !available})
}
