package studioconfig

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных настройках
	ErrInvalidInput = errors.New("invalid config data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
