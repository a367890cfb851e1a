package utils

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// RunWithTimeout は fn を timeout 以内で実行します
// 時間切れの場合は context.DeadlineExceeded を、親がキャンセルされた場合は context.Canceled を包んだエラーを返します
func RunWithTimeout(ctx context.Context, timeout time.Duration, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- fn(ctx)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("process timed out after %v: %w", timeout, ctx.Err())
		}
		return fmt.Errorf("process cancelled: %w", ctx.Err())
	}
}
