package fetcher

import (
	"errors"
	"fmt"
)

var ErrInvalidRequest = errors.New("invalid page request")

// Вид ошибки загрузки страницы
type ErrorKind int

const (
	// Сеть, таймаут или неуспешный статус ответа
	KindNetwork ErrorKind = iota
	// Пустое тело ответа
	KindNoData
	// Тело ответа не разбирается
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindNoData:
		return "no_data"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error классифицированная ошибка загрузки. Текст ошибки показывается пользователю
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNoData:
		return "no data in response"
	case KindDecode:
		return fmt.Sprintf("failed to decode response: %v", e.Err)
	default:
		return fmt.Sprintf("network error: %v", e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NetworkError(err error) error {
	return &Error{Kind: KindNetwork, Err: err}
}

func NoDataError() error {
	return &Error{Kind: KindNoData}
}

func DecodeError(err error) error {
	return &Error{Kind: KindDecode, Err: err}
}

// KindOf возвращает вид ошибки, false если ошибка не классифицирована
func KindOf(err error) (ErrorKind, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return 0, false
}
