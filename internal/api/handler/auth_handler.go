package handler

import (
	"Portfolio/internal/api/dto"
	"Portfolio/internal/api/middleware"
	"Portfolio/internal/pkg/response"
	"Portfolio/internal/pkg/util"
	"Portfolio/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (s *AuthHandler) Login(c *gin.Context) {
	var loginDTO dto.LoginDTO
	if err := c.ShouldBind(&loginDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&loginDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}
	session, err := s.auth.SignInWithPassword(c.Request.Context(), &loginDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toSessionDTO(session))
}

func (s *AuthHandler) Logout(c *gin.Context) {
	dash := middleware.CurrentDashboard(c)
	if err := s.auth.SignOut(c.Request.Context(), dash.Session); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AuthHandler) Session(c *gin.Context) {
	response.Success(c, toSessionDTO(middleware.CurrentDashboard(c).Session))
}

func toSessionDTO(session *service.Session) *dto.SessionDTO {
	return &dto.SessionDTO{
		Token:     session.Token,
		UserID:    session.UserID,
		Email:     session.Email,
		ExpiresAt: session.ExpiresAt.Unix(),
	}
}
