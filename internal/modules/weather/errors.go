package weather

import (
	"errors"
	"fmt"
)

var (
	ErrCityNotFound   = errors.New("city not found")
	ErrUnauthorized   = errors.New("weather provider authentication failed")
	ErrUpstreamStatus = errors.New("weather provider returned an error status")
	ErrNetwork        = errors.New("weather provider unreachable")
	ErrTimeout        = errors.New("weather provider timed out")
	ErrIncompleteData = errors.New("weather data incomplete")
	ErrUnexpected     = errors.New("unexpected weather error")
)

// FetchError carries the classification of a failed fetch. Match it with errors.Is against the sentinels above.
type FetchError struct {
	Kind   error
	City   string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("weather %q: %v", e.City, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func fetchErr(kind error, city string, status int, err error) *FetchError {
	return &FetchError{Kind: kind, City: city, Status: status, Err: err}
}

// UserMessage translates a fetch failure into the Vietnamese text shown to the user.
func UserMessage(err error, city string) string {
	var fe *FetchError
	status := 0
	if errors.As(err, &fe) {
		status = fe.Status
	}
	switch {
	case errors.Is(err, ErrCityNotFound):
		return fmt.Sprintf("Xin lỗi, tôi không tìm thấy thông tin thời tiết cho thành phố '%s'. Vui lòng kiểm tra lại tên thành phố.", city)
	case errors.Is(err, ErrUnauthorized):
		return "Lỗi xác thực với dịch vụ thời tiết. Có thể API key của OpenWeatherMap không hợp lệ."
	case errors.Is(err, ErrUpstreamStatus):
		return fmt.Sprintf("Đã xảy ra lỗi (%d) khi cố gắng lấy thông tin thời tiết cho '%s'.", status, city)
	case errors.Is(err, ErrTimeout):
		return "Dịch vụ thời tiết phản hồi quá chậm. Vui lòng thử lại sau ít phút."
	case errors.Is(err, ErrNetwork):
		return "Lỗi kết nối đến dịch vụ thời tiết. Vui lòng kiểm tra kết nối mạng và thử lại."
	case errors.Is(err, ErrIncompleteData):
		return fmt.Sprintf("Xin lỗi, dữ liệu thời tiết nhận được cho %s không đầy đủ.", city)
	default:
		return "Xin lỗi, tôi đã gặp một lỗi không mong muốn. Vui lòng thử lại sau."
	}
}
