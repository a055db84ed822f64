package domain

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCategory string

const (
	ErrorCategoryValidation  ErrorCategory = "validation"
	ErrorCategoryPersistence ErrorCategory = "persistence"
	ErrorCategoryGeneration  ErrorCategory = "generation"
)

// StatusClass buckets a storage response status for callers that only
// care about who is at fault.
type StatusClass string

const (
	StatusClassClient   StatusClass = "client"
	StatusClassNotFound StatusClass = "not_found"
	StatusClassServer   StatusClass = "server"
)

func ClassifyStatus(code int) StatusClass {
	switch {
	case code == http.StatusNotFound:
		return StatusClassNotFound
	case code >= 400 && code < 500:
		return StatusClassClient
	default:
		return StatusClassServer
	}
}

// LocalizedError is implemented by every error that can be shown to an end
// user without leaking transport details.
type LocalizedError interface {
	error
	Category() ErrorCategory
	Localized(lang Language) string
}

type (
	ValidationError struct {
		Field  string
		Reason string
	}

	PersistenceError struct {
		Op         string
		Class      StatusClass
		StatusCode int
		Message    string
		Cause      error
	}

	GenerationError struct {
		Provider string
		Cause    error
	}
)

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Category() ErrorCategory { return ErrorCategoryValidation }

func (e *ValidationError) Localized(lang Language) string {
	if e.Field == "" {
		return lang.Pick("ข้อมูลไม่ถูกต้อง", "Invalid input")
	}
	return lang.Pick("ข้อมูลไม่ถูกต้อง: ", "Invalid input: ") + e.Field
}

func (e *PersistenceError) Error() string {
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	return fmt.Sprintf("persistence %s: %s (status %d)", e.Op, msg, e.StatusCode)
}

func (e *PersistenceError) Unwrap() error { return e.Cause }

// Is lets callers test a remote not-found with errors.Is(err, ErrInventoryItemNotFound).
func (e *PersistenceError) Is(target error) bool {
	return target == ErrInventoryItemNotFound && e.Class == StatusClassNotFound
}

func (e *PersistenceError) Category() ErrorCategory { return ErrorCategoryPersistence }

func (e *PersistenceError) Localized(lang Language) string {
	switch e.Class {
	case StatusClassNotFound:
		return lang.Pick("ไม่พบรายการ", "Item not found")
	case StatusClassClient:
		return lang.Pick("คำขอไม่ถูกต้อง", "The request was rejected")
	default:
		return lang.Pick("ไม่สามารถเชื่อมต่อเซิร์ฟเวอร์ได้ กรุณาลองใหม่อีกครั้ง", "Could not reach the server, please try again")
	}
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("recipe generation via %s: %v", e.Provider, e.Cause)
}

func (e *GenerationError) Unwrap() error { return e.Cause }

func (e *GenerationError) Category() ErrorCategory { return ErrorCategoryGeneration }

func (e *GenerationError) Localized(lang Language) string {
	return lang.Pick("ไม่สามารถสร้างสูตรอาหารได้ในขณะนี้", "Recipe generation is unavailable right now")
}

// UserMessage renders err for display.
func UserMessage(err error, lang Language) string {
	if err == nil {
		return ""
	}
	var localized LocalizedError
	if errors.As(err, &localized) {
		return localized.Localized(lang)
	}
	switch {
	case errors.Is(err, ErrInventoryItemNotFound):
		return lang.Pick("ไม่พบรายการ", "Item not found")
	case errors.Is(err, ErrNoExpiringIngredients):
		return lang.Pick("ไม่มีวัตถุดิบที่ใกล้หมดอายุ", "No expiring ingredients found")
	}
	return lang.Pick("เกิดข้อผิดพลาด", "Something went wrong")
}
