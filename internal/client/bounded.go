package client

import (
	"context"
	"fmt"
	"time"
)

// CallWithTimeout 在限定时间内执行 fn
// 超时或调用方取消时返回错误，并通过 context 取消仍在进行的调用，
// 避免外部请求拖住用户回合。
func CallWithTimeout[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		value T
		err   error
	}

	done := make(chan outcome, 1)
	go func() {
		value, err := fn(callCtx)
		done <- outcome{value: value, err: err}
	}()

	select {
	case out := <-done:
		return out.value, out.err
	case <-callCtx.Done():
		var zero T
		return zero, fmt.Errorf("调用超时或被取消: %w", callCtx.Err())
	}
}
