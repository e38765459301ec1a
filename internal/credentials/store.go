// Package credentials реализует статичное хранилище учётных записей
// и таблицы соответствия ролей и разрешений.
//
// Данные загружаются один раз при старте процесса из YAML-файла и далее
// не меняются: хранилище безопасно для конкурентного чтения без блокировок.
// Store передаётся в сервис аутентификации явно, чтобы тесты могли
// подставлять собственные наборы ролей.
package credentials

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/magabrotheeeer/repair-orders/internal/models"
)

// File описывает структуру YAML-файла с учётными записями и ролями.
type File struct {
	Users           []models.User       `yaml:"users"`
	RolePermissions map[string][]string `yaml:"role_permissions"`
}

// Store статичный набор пользователей и таблица роль → разрешения.
type Store struct {
	byEmail     map[string]models.User
	permissions map[string]map[string]struct{}
}

// Load читает файл учётных записей и строит Store.
func Load(path string) (*Store, error) {
	const op = "credentials.Load"
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var f File
	if err := cleanenv.ReadConfig(path, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return NewStore(f.Users, f.RolePermissions), nil
}

// NewStore строит Store из готовых наборов пользователей и разрешений.
func NewStore(users []models.User, rolePermissions map[string][]string) *Store {
	s := &Store{
		byEmail:     make(map[string]models.User, len(users)),
		permissions: make(map[string]map[string]struct{}, len(rolePermissions)),
	}
	for _, u := range users {
		s.byEmail[u.Email] = u
	}
	for role, tags := range rolePermissions {
		set := make(map[string]struct{}, len(tags))
		for _, tag := range tags {
			set[tag] = struct{}{}
		}
		s.permissions[role] = set
	}
	return s
}

// FindActiveByEmail возвращает активного пользователя по точному совпадению email.
// Неактивные пользователи исключены из множества, доступного для входа.
func (s *Store) FindActiveByEmail(email string) (*models.User, bool) {
	u, ok := s.byEmail[email]
	if !ok || !u.Active {
		return nil, false
	}
	return &u, true
}

// RoleHasPermission сообщает, содержит ли набор разрешений роли указанный тег.
// Роль, отсутствующая в таблице, не имеет ни одного разрешения.
func (s *Store) RoleHasPermission(role, tag string) bool {
	set, ok := s.permissions[role]
	if !ok {
		return false
	}
	_, ok = set[tag]
	return ok
}

// Count возвращает количество загруженных учётных записей.
func (s *Store) Count() int {
	return len(s.byEmail)
}
