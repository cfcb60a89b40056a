package helpers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AvatarFolder = "avatars"
	HotelFolder  = "hotels"
	FoodFolder   = "foods"
)

type CustomClaims struct {
	Role        string `json:"role"`
	Email       string `json:"email"`
	AppMetadata struct {
		Provider  string   `json:"provider"`
		Providers []string `json:"providers"`
		Roles     []string `json:"roles,omitempty"`
	} `json:"app_metadata"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	jwt.RegisteredClaims
}

func ValidateToken(tokenStr string) (*CustomClaims, error) {
	supabaseURL := os.Getenv("SUPABASE_URL")
	if supabaseURL == "" {
		return nil, errors.New("SUPABASE_URL not set")
	}

	jwksURL := fmt.Sprintf("%s/rest/v1/auth/jwks", supabaseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx: ctx,
	})
	if err != nil {
		// Fallback to unverified parsing if JWKS fails (for development)
		token, _, parseErr := jwt.NewParser().ParseUnverified(tokenStr, &CustomClaims{})
		if parseErr != nil {
			return nil, fmt.Errorf("JWKS validation failed and fallback parsing failed: %v", parseErr)
		}
		claims, ok := token.Claims.(*CustomClaims)
		if !ok {
			return nil, errors.New("invalid token claims")
		}
		return claims, nil
	}
	defer jwks.EndBackground()

	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, jwks.Keyfunc)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	return claims, nil
}

func IsPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`\d`).MatchString(password)
	hasSpecial := regexp.MustCompile(`[@$!%*?&]`).MatchString(password)
	return hasLower && hasUpper && hasNumber && hasSpecial
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

func GenerateSlug(name, location string) string {
	s := strings.ToLower(strings.TrimSpace(name + " " + location))
	s = slugCleaner.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return fmt.Sprintf("%s-%s", s, uuid.NewString()[:8])
}

// UploadImages pushes each local file or data URI to Cloudinary and returns
// the secure URLs plus the public IDs needed to delete them on rollback.
func UploadImages(ctx context.Context, cld *cloudinary.Cloudinary, imageNames []string, imagePath string) ([]string, []string, error) {
	var urls []string
	var publicIDs []string

	for _, filePath := range imageNames {
		if strings.TrimSpace(filePath) == "" {
			continue
		}
		uploadResult, err := cld.Upload.Upload(ctx, filePath, uploader.UploadParams{
			Folder: imagePath,
			Tags:   []string{"staybay-app"},
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to upload image %s: %v", filePath, err)
		}

		urls = append(urls, uploadResult.SecureURL)
		publicIDs = append(publicIDs, uploadResult.PublicID)
	}

	return urls, publicIDs, nil
}

// DeleteImages removes previously uploaded assets. Best effort: failures are
// returned joined but do not stop the remaining deletions.
func DeleteImages(ctx context.Context, cld *cloudinary.Cloudinary, publicIDs []string) error {
	var errs []error
	for _, id := range publicIDs {
		if strings.TrimSpace(id) == "" {
			continue
		}
		if _, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: id}); err != nil {
			errs = append(errs, fmt.Errorf("failed to delete image %s: %v", id, err))
		}
	}
	return errors.Join(errs...)
}
