package middleware

import (
	"context"

	"hrform/internal/domain/auth"
	"hrform/internal/requestctx"
)

type ctxKey string

const ctxKeyOperator ctxKey = "operator"

func WithOperator(ctx context.Context, op auth.OperatorContext) context.Context {
	return context.WithValue(ctx, ctxKeyOperator, op)
}

func GetOperator(ctx context.Context) (auth.OperatorContext, bool) {
	op, ok := ctx.Value(ctxKeyOperator).(auth.OperatorContext)
	return op, ok
}

func GetRequestID(ctx context.Context) string {
	return requestctx.GetRequestID(ctx)
}
