package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const msgInternalError = "внутренняя ошибка сервера"

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// DecodeJSON декодирует тело запроса в dst, запрещая неизвестные поля
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

// RespondJSON пишет payload как JSON с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		// Ошибку кодирования уже не вернуть клиенту: статус отправлен
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError пишет ошибку с указанным статусом
func RespondError(w http.ResponseWriter, status int, msg string) {
	RespondJSON(w, status, ErrorResponse{Error: msg})
}

func RespondBadRequest(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusBadRequest, msg)
}

func RespondUnauthorized(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusUnauthorized, msg)
}

func RespondForbidden(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusForbidden, msg)
}

func RespondNotFound(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusNotFound, msg)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}
