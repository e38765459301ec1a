// Package login реализует HTTP-обработчик для запросов аутентификации пользователей.
//
// В нём определяется структура Request для входных данных, выполняется декодирование JSON,
// проверка и валидация полей, а также делегирование операции входа сервису аутентификации.
// При успешной аутентификации возвращается JSON с JWT и сводкой о пользователе;
// в случае ошибок формируются соответствующие HTTP-ответы.
//
// Ответ на неизвестный email и на неверный пароль одинаков. Количество
// неудачных попыток на email ограничено счётчиком в Redis.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/repair-orders/internal/config"
	"github.com/magabrotheeeer/repair-orders/internal/http/response"
	"github.com/magabrotheeeer/repair-orders/internal/lib/sl"
	authservice "github.com/magabrotheeeer/repair-orders/internal/services/auth"
)

// Request — структура входных данных для авторизации.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(email, password string) (*authservice.LoginResult, error)
}

// AttemptLimiter описывает счётчик неудачных попыток входа.
type AttemptLimiter interface {
	IncrementLoginAttempts(ctx context.Context, email string, window time.Duration) (int64, error)
	LoginAttempts(ctx context.Context, email string) (int64, error)
	ResetLoginAttempts(ctx context.Context, email string) error
}

// Handler обрабатывает HTTP-запросы для авторизации.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис аутентификации
	limiter  AttemptLimiter      // Счётчик неудачных попыток входа
	limits   config.LoginLimit   // Пороги ограничения попыток
	validate *validator.Validate // Валидатор для проверки входных данных
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, limiter AttemptLimiter, limits config.LoginLimit) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		limiter:  limiter,
		limits:   limits,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Авторизация пользователя
// @Description Аутентифицирует пользователя по email и паролю. Возвращает JWT и сводку о пользователе.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} map[string]any "Успешная авторизация"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 429 {object} response.ErrorResponse "Слишком много попыток входа"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	attempts, err := h.limiter.LoginAttempts(r.Context(), req.Email)
	if err != nil {
		log.Error("failed to read login attempts", sl.Err(err))
	}
	if attempts >= int64(h.limits.MaxLoginAttempts) {
		log.Warn("login blocked, too many attempts",
			slog.String("email", req.Email),
			slog.String("remote_addr", r.RemoteAddr),
		)
		w.WriteHeader(http.StatusTooManyRequests)
		render.JSON(w, r, response.Error("too many login attempts"))
		return
	}

	result, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			if _, incErr := h.limiter.IncrementLoginAttempts(r.Context(), req.Email, h.limits.LoginWindow); incErr != nil {
				log.Error("failed to increment login attempts", sl.Err(incErr))
			}
			log.Warn("login rejected",
				slog.String("email", req.Email),
				slog.String("remote_addr", r.RemoteAddr),
			)
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid credentials"))
			return
		}
		log.Error("login failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	if err := h.limiter.ResetLoginAttempts(r.Context(), req.Email); err != nil {
		log.Error("failed to reset login attempts", sl.Err(err))
	}

	log.Info("login success",
		slog.String("email", req.Email),
		slog.String("remote_addr", r.RemoteAddr),
	)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"token": result.Token,
		"user":  result.User,
	}))
}
