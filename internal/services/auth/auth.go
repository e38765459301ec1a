// Package services содержит логику бизнес-уровня для аутентификации и проверки прав.
package services

import (
	"errors"

	"github.com/magabrotheeeer/repair-orders/internal/credentials"
	"github.com/magabrotheeeer/repair-orders/internal/lib/jwt"
	"github.com/magabrotheeeer/repair-orders/internal/lib/password"
	"github.com/magabrotheeeer/repair-orders/internal/models"
)

// ErrInvalidCredentials возвращается при неизвестном email и при неверном
// пароле одинаково, чтобы по ответу нельзя было перечислить пользователей.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken возвращается для отсутствующего, повреждённого и
// просроченного токена без уточнения причины.
var ErrInvalidToken = errors.New("invalid or expired token")

// LoginResult результат успешного входа: токен и сводка о пользователе.
type LoginResult struct {
	Token string
	User  models.Identity
}

// AuthService отвечает за вход по паролю, проверку JWT и предикат прав.
type AuthService struct {
	store    *credentials.Store
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(store *credentials.Store, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		store:    store,
		jwtMaker: jwtMaker,
	}
}

// Login проверяет пару email/пароль и выпускает JWT со сроком жизни из
// конфигурации. Для неизвестного пользователя хэш не сверяется, но и
// различить этот случай по ответу нельзя.
func (s *AuthService) Login(email, rawPassword string) (*LoginResult, error) {
	user, ok := s.store.FindActiveByEmail(email)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.ID, user.Email, user.Role, user.Name)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token: token,
		User: models.Identity{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
			Name:   user.Name,
		},
	}, nil
}

// ValidateToken проверяет JWT и возвращает личность вызывающего.
func (s *AuthService) ValidateToken(token string) (*models.Identity, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &models.Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
		Name:   claims.Name,
	}, nil
}

// HasPermission сообщает, входит ли тег в набор разрешений роли.
// Предикат чистый: решение о запрете принимает вызывающий.
func (s *AuthService) HasPermission(role, tag string) bool {
	return s.store.RoleHasPermission(role, tag)
}
