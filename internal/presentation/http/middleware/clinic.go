package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicore/clinicore-api/internal/domain/repository"
	infraRepo "github.com/clinicore/clinicore-api/internal/infrastructure/repository"
	"github.com/clinicore/clinicore-api/internal/presentation/http/dto/response"
)

// ExtractClinicFromHost extracts the clinic slug from the subdomain,
// e.g. "sunrise.clinicore.app" -> "sunrise"
func ExtractClinicFromHost(host string) (string, error) {
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	parts := strings.Split(host, ".")
	if len(parts) < 3 {
		return "", errors.New("invalid subdomain")
	}
	return parts[0], nil
}

// ClinicMiddleware resolves the clinic from the subdomain, or from the
// X-Clinic-Slug header when no subdomain is present, and scopes the
// request context to it.
func ClinicMiddleware(clinicRepo repository.ClinicRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		clinicSlug, err := ExtractClinicFromHost(c.Request.Host)
		if err != nil {
			clinicSlug = c.GetHeader("X-Clinic-Slug")
		}
		if clinicSlug == "" {
			c.Set("clinic_id", uuid.Nil)
			c.Next()
			return
		}

		clinic, err := clinicRepo.GetBySlug(c.Request.Context(), clinicSlug)
		if err != nil || clinic == nil {
			response.NotFound(c, "Clinic not found")
			c.Abort()
			return
		}

		// If the caller is authenticated they must be a member of this clinic
		userIDVal, exists := c.Get("user_id")
		if exists {
			userID, ok := userIDVal.(uuid.UUID)
			if ok && userID != uuid.Nil {
				isMember, _ := clinicRepo.IsMember(c.Request.Context(), clinic.ID, userID)
				if !isMember {
					response.Forbidden(c, "Access denied to this clinic")
					c.Abort()
					return
				}
			}
		}

		c.Set("clinic_id", clinic.ID)
		c.Set("clinic", clinic)

		ctx := infraRepo.WithClinic(c.Request.Context(), clinic.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireClinic ensures a valid clinic context exists
func RequireClinic() gin.HandlerFunc {
	return func(c *gin.Context) {
		clinicID, exists := c.Get("clinic_id")
		if !exists {
			response.BadRequest(c, "Clinic context required")
			c.Abort()
			return
		}

		id, ok := clinicID.(uuid.UUID)
		if !ok || id == uuid.Nil {
			response.BadRequest(c, "Invalid clinic context")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetClinicID retrieves the clinic ID from gin context
func GetClinicID(c *gin.Context) uuid.UUID {
	clinicID, exists := c.Get("clinic_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := clinicID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
