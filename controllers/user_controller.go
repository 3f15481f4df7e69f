package controllers

import (
	"net/http"

	"github.com/community-board/api-go/services"
	"github.com/community-board/api-go/utils"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	Users services.UserService
}

func NewUserController(users services.UserService) *UserController {
	return &UserController{Users: users}
}

// SignUp godoc
// @Summary Register a new account
// @Tags users
// @Accept json
// @Produce json
// @Param user body services.SignUpRequest true "Sign up request"
// @Success 201 {object} map[string]interface{}
// @Router /users [post]
func (uc *UserController) SignUp(c *gin.Context) {
	var req services.SignUpRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, err := uc.Users.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    gin.H{"userId": userID},
		Message: "User registered successfully",
	})
}

func (uc *UserController) GetMe(c *gin.Context) {
	user, err := uc.Users.GetMe(c.Request.Context(), utils.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: user})
}

// UpdateMe godoc
// @Summary Update email, nickname and profile image
// @Tags users
// @Accept json
// @Produce json
// @Param user body services.UpdateUserRequest true "Profile update"
// @Success 200 {object} services.UserResponse
// @Router /users/me [patch]
func (uc *UserController) UpdateMe(c *gin.Context) {
	var req services.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := uc.Users.Update(c.Request.Context(), req, utils.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    user,
		Message: "Profile updated successfully",
	})
}

func (uc *UserController) ChangePassword(c *gin.Context) {
	var req services.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := uc.Users.ChangePassword(c.Request.Context(), req, utils.ActorID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Password changed successfully"})
}

// DeleteMe godoc
// @Summary Deactivate the account
// @Description The account is flagged as deleted; authored content stays
// @Tags users
// @Success 204
// @Router /users/me [delete]
func (uc *UserController) DeleteMe(c *gin.Context) {
	if err := uc.Users.Delete(c.Request.Context(), utils.ActorID(c)); err != nil {
		respondError(c, err)
		return
	}

	clearRefreshCookie(c)
	c.Status(http.StatusNoContent)
}
