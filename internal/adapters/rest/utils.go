package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/beyondeth/shop/internal/contracts"

	"github.com/go-chi/chi/v5"
)

const maxRequestBody = 64 << 10

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, map[string]string{"error": message})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(response)
}

// BodyValidator проверяет сырое тело запроса по именованной схеме.
type BodyValidator interface {
	Validate(key string, body []byte) error
}

var errBodyTooLarge = errors.New("request body too large")

// decodeValidated читает тело, проверяет его по схеме и только потом разбирает в dst.
func decodeValidated(r *http.Request, validator BodyValidator, schemaKey string, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody+1))
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}
	if len(body) > maxRequestBody {
		return errBodyTooLarge
	}

	if validator != nil {
		if err := validator.Validate(schemaKey, body); err != nil {
			return err
		}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", contracts.ErrSchemaViolation, err)
	}
	return nil
}

// pathParam возвращает декодированный параметр пути. chi сопоставляет
// маршрут по RawPath, если он задан, и тогда параметр еще экранирован.
func pathParam(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return value
	}
	if decoded, err := url.PathUnescape(value); err == nil {
		return decoded
	}
	return value
}
