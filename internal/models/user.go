// Package models содержит доменную модель пользователя системы.
// Учётные записи статичны: они загружаются один раз при старте процесса
// и не меняются во время его работы.
package models

// User представляет сотрудника, которому разрешён вход в систему.
type User struct {
	ID           int    `yaml:"id"`            // Уникальный идентификатор пользователя
	Email        string `yaml:"email"`         // Электронная почта, используется как логин
	PasswordHash string `yaml:"password_hash"` // bcrypt-хэш пароля, наружу не отдаётся
	Role         string `yaml:"role"`          // Роль пользователя, например ADMIN или EMPLOYEE
	Name         string `yaml:"name"`          // Отображаемое имя
	Active       bool   `yaml:"active"`        // Неактивные пользователи не могут войти
}

// Identity данные аутентифицированного пользователя, извлечённые из токена.
type Identity struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Name   string `json:"name"`
}
