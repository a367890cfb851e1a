package utils

import (
	"fmt"
	"runtime/debug"
)

// GetStackWithError はエラーに呼び出し時点のスタックトレースを付けて返します
// errors.Is / errors.As で元のエラーを判定できます
func GetStackWithError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w\nStack trace:\n%s", err, debug.Stack())
}
