package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, неверный пароль).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда у пользователя недостаточно прав для действия.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния (например, занятое имя пользователя).
	ErrConflict = errors.New("resource state conflict")
)

// Ошибки конвейера генерации викторин
var (
	// ErrMissingConfiguration означает, что обязательный параметр конфигурации
	// (ключ AI-сервиса) не задан. Проверяется до любого сетевого вызова.
	ErrMissingConfiguration = errors.New("service configuration is incomplete")

	// ErrUpstreamService означает сбой внешнего генеративного сервиса:
	// либо невосстановимый отказ, либо исчерпание повторных попыток.
	ErrUpstreamService = errors.New("upstream generation service failed")

	// ErrMalformedResponse означает, что ответ генеративного сервиса
	// нарушает структурный контракт (пустой конверт или невалидный JSON).
	ErrMalformedResponse = errors.New("malformed response from generation service")

	// ErrEmptyQuiz означает, что после фильтрации не осталось ни одного
	// валидного вопроса.
	ErrEmptyQuiz = errors.New("no valid questions were produced")
)
