package handlers

import (
	"net/http"

	"github.com/Pycomet/grindproof-sub001/internal/api/dto"
	"github.com/Pycomet/grindproof-sub001/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// UserToResponse maps a user to its API representation, hiding the password hash
func UserToResponse(u *user.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Timezone:    u.Timezone,
		CreatedAt:   u.CreatedAt,
	}
}

// bindRequest fetches the model left by the validation middleware, falling
// back to manual binding when the middleware did not run. On failure it writes
// the error response and returns ok=false.
func bindRequest[T any](c *gin.Context) (T, bool) {
	var req T

	if validatedModel, exists := c.Get("validated_model"); exists {
		if validatedPtr, ok := validatedModel.(*T); ok {
			return *validatedPtr, true
		}
		log.Errorf("Invalid model type: %T", validatedModel)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model type from validation"})
		return req, false
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, false
	}
	return req, true
}
