package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/festflow/festflow-api/internal/api/handler/v1/response"
	"github.com/festflow/festflow-api/internal/pkg/jwthelper"
)

const userIDKey = "userID"

type TokenVerifier interface {
	VerifyToken(token string) (uint, error)
}

type Authenticator struct {
	tokens TokenVerifier
}

func NewAuthenticator(tokens TokenVerifier) *Authenticator {
	return &Authenticator{
		tokens: tokens,
	}
}

// VerifyJWT rejects requests without a valid bearer token and stores the
// caller's user id on the context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := jwthelper.TokenFromHeader(ctx.GetHeader("Authorization"))
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		userID, err := a.tokens.VerifyToken(token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		ctx.Set(userIDKey, userID)
		ctx.Next()
	}
}

// UserID returns the id stored by VerifyJWT.
func UserID(ctx *gin.Context) (uint, bool) {
	id, ok := ctx.Get(userIDKey)
	if !ok {
		return 0, false
	}

	userID, ok := id.(uint)
	return userID, ok && userID != 0
}
