package di

import (
	"gorm.io/gorm"

	"places_backend/internal/app/config"
	authadapters "places_backend/internal/feature/auth/adapters"
	authhandler "places_backend/internal/feature/auth/transport/handler"
	authusecase "places_backend/internal/feature/auth/usecase"
	jwtmw "places_backend/internal/platform/jwt"
	"places_backend/internal/shared/upload"
)

// NewAuthHandler wires the users feature with a JWT generator signed by JWT_SECRET.
func NewAuthHandler(cfg *config.Config, db *gorm.DB, images upload.Store) *authhandler.AuthHandler {
	userRepo := authadapters.NewUserRepository(db)
	tokens := jwtmw.NewGenerator(cfg.JWT.Secret, cfg.JWT.Expiration)
	uc := authusecase.NewAuthUsecase(userRepo, tokens)
	return authhandler.NewAuthHandler(uc, images)
}

// NewVerifier creates the verifier used by the Auth Gate.
func NewVerifier(cfg *config.Config) *jwtmw.HMACVerifier {
	return jwtmw.NewVerifier(cfg.JWT.Secret)
}
