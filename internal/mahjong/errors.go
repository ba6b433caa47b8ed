package mahjong

import (
	"context"
	"errors"
)

var (
	// ErrEmptyInput is returned when the submitted text is blank after trimming.
	ErrEmptyInput = errors.New("input cannot be empty")

	// ErrProviderUnavailable wraps transport failures (connection refused, DNS, reset).
	ErrProviderUnavailable = errors.New("AI service is unavailable")

	// ErrProviderError wraps non-success responses, including in-band error envelopes.
	ErrProviderError = errors.New("AI service returned an error")

	// ErrMalformedResponse is returned when the response body lacks the expected reply.
	ErrMalformedResponse = errors.New("malformed AI service response")
)

// FailureText converts a provider error into the text shown to the user in
// place of a reply.
func FailureText(err error) string {
	switch {
	case errors.Is(err, ErrProviderUnavailable):
		return "AIサービスに接続できませんでした。しばらくしてからもう一度お試しください。"
	case errors.Is(err, ErrProviderError):
		return "AIサービスでエラーが発生しました。もう一度お試しください。"
	case errors.Is(err, ErrMalformedResponse):
		return "AIサービスの応答を読み取れませんでした。"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "応答の取得を中断しました。"
	default:
		return "応答の取得に失敗しました。もう一度お試しください。"
	}
}
