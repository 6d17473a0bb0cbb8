package common

import (
	"errors"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"message"`           // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap 支援 errors.Is / errors.As 比對
func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is 以錯誤代碼判斷同類錯誤，讓包裝後的管線錯誤仍可比對哨兵值
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// WrapError 以哨兵錯誤的代碼包裝底層錯誤
func WrapError(sentinel *CustomError, err error) *CustomError {
	return &CustomError{
		Code:    sentinel.Code,
		Message: sentinel.Message,
		Status:  sentinel.Status,
		Err:     err,
	}
}

// ValidationError 表示驗證錯誤
type ValidationError struct {
	message string
}

// Error 實現 error 介面
func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError 創建新的驗證錯誤
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError 檢查是否為驗證錯誤
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeNotFound        = "NOT_FOUND"         // 404
	ErrCodeRequestTimeout  = "REQUEST_TIMEOUT"   // 408
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429

	// 服務器錯誤 (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
	ErrCodeGatewayTimeout     = "GATEWAY_TIMEOUT"     // 504

	// 管線錯誤分類
	ErrCodeTransport       = "TRANSPORT_ERROR"
	ErrCodeParseFailure    = "PARSE_FAILURE"
	ErrCodeSchemaViolation = "SCHEMA_VIOLATION"
	ErrCodeMenuInvalid     = "MENU_VALIDATION_FAILURE"
)

// 預定義錯誤
var (
	// 客戶端錯誤
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "無效的請求", http.StatusBadRequest, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "資源不存在", http.StatusNotFound, nil)
	ErrRequestTimeout  = NewError(ErrCodeRequestTimeout, "請求超時", http.StatusRequestTimeout, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "請求過於頻繁", http.StatusTooManyRequests, nil)

	// 服務器錯誤
	ErrInternalError      = NewError(ErrCodeInternalError, "服務器內部錯誤", http.StatusInternalServerError, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "服務暫時不可用", http.StatusServiceUnavailable, nil)
	ErrGatewayTimeout     = NewError(ErrCodeGatewayTimeout, "網關超時", http.StatusGatewayTimeout, nil)

	// 業務錯誤
	ErrInvalidImageFormat = NewError("INVALID_IMAGE_FORMAT", "無效的圖片格式", http.StatusBadRequest, nil)
	ErrInvalidImageSize   = NewError("INVALID_IMAGE_SIZE", "圖片大小超出限制", http.StatusBadRequest, nil)
	ErrCacheFull          = NewError("CACHE_FULL", "緩存已滿", http.StatusServiceUnavailable, nil)
	ErrCacheDisabled      = NewError("CACHE_DISABLED", "緩存已禁用", http.StatusServiceUnavailable, nil)

	// 管線錯誤：除 preferences 驗證外，這些都不會外洩給呼叫端，
	// 只用於決定傳單降級或菜單回退
	ErrTransport       = NewError(ErrCodeTransport, "AI 服務連線失敗", http.StatusServiceUnavailable, nil)
	ErrParseFailure    = NewError(ErrCodeParseFailure, "AI 回應無法解析為 JSON", http.StatusServiceUnavailable, nil)
	ErrSchemaViolation = NewError(ErrCodeSchemaViolation, "AI 回應缺少必要欄位", http.StatusServiceUnavailable, nil)
	ErrMenuInvalid     = NewError(ErrCodeMenuInvalid, "候選菜單未通過驗證", http.StatusServiceUnavailable, nil)
)

// IsTransportError 檢查是否為 AI 傳輸錯誤
func IsTransportError(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsParseFailure 檢查是否為 JSON 修復/解析失敗
func IsParseFailure(err error) bool {
	return errors.Is(err, ErrParseFailure)
}

// IsSchemaViolation 檢查是否為結構不符
func IsSchemaViolation(err error) bool {
	return errors.Is(err, ErrSchemaViolation)
}

// IsMenuInvalid 檢查是否為菜單驗證失敗
func IsMenuInvalid(err error) bool {
	return errors.Is(err, ErrMenuInvalid)
}
