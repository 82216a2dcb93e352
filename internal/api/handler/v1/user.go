package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/festflow/festflow-api/internal/api/handler/v1/response"
	"github.com/festflow/festflow-api/internal/api/middleware"
	"github.com/festflow/festflow-api/internal/domain"
	"github.com/festflow/festflow-api/internal/service"
)

var (
	errNoIdentity  = errors.New("no token")
	errUserRemoved = errors.New("user no longer exists")
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleGetMe godoc
// @Summary      Get the current user
// @Description  Returns the caller's profile and the ids of the events it registered for.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Data[domain.User]
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /auth/me [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetMe(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, response.OK(user))
}

func getUserFromContext(ctx *gin.Context, svc UserService) (domain.User, *response.Err) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return domain.User{}, response.ErrUnauthorized(errNoIdentity)
	}

	user, err := svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrUnauthorized(errUserRemoved)
		}

		err = fmt.Errorf("v1.getUserFromContext -> svc.GetUser -> %w", err)
		return domain.User{}, response.ErrInternalServerError(err)
	}

	return user, nil
}

func callerID(ctx *gin.Context) (uint, *response.Err) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return 0, response.ErrUnauthorized(errNoIdentity)
	}

	return userID, nil
}
