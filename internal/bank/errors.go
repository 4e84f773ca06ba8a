// internal/bank/errors.go
//
// 本檔集中定義「領域錯誤（domain errors）」。
// 這些錯誤皆屬可恢復的業務結果，由上層 console 轉換成提示訊息；
// 任何錯誤發生時帳戶狀態皆維持不變。

package bank

import "errors"

var (
	// ErrInvalidInput 為所有 ValidationError 的共同根錯誤，可用 errors.Is 比對。
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound 代表帳戶不存在。
	ErrNotFound = errors.New("account not found")

	// ErrInsufficientFunds 代表提款金額超過餘額。
	ErrInsufficientFunds = errors.New("insufficient balance")

	// ErrIDSpaceExhausted 代表 ID 產生器在有限次數內找不到未使用的 ID。
	ErrIDSpaceExhausted = errors.New("no free account id available")
)

// ValidationError 代表輸入格式錯誤或超出範圍（非正金額、開戶金額不足、空白名稱）。
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap 讓 errors.Is(err, ErrInvalidInput) 成立。
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
