package xcontext

import "context"

type (
	errorHolderKey    struct{}
	responseHolderKey struct{}
)

type errorHolder struct {
	err error
}

type responseHolder struct {
	resp any
}

// WithRequestHolders prepares mutable slots for the request error and
// response, so After middlewares and closers can observe what the handler
// produced without rebuilding the context.
func WithRequestHolders(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, errorHolderKey{}, &errorHolder{})
	return context.WithValue(ctx, responseHolderKey{}, &responseHolder{})
}

func SetError(ctx context.Context, err error) {
	if holder, ok := ctx.Value(errorHolderKey{}).(*errorHolder); ok {
		holder.err = err
	}
}

func Error(ctx context.Context) error {
	if holder, ok := ctx.Value(errorHolderKey{}).(*errorHolder); ok {
		return holder.err
	}

	return nil
}

func SetResponse(ctx context.Context, resp any) {
	if holder, ok := ctx.Value(responseHolderKey{}).(*responseHolder); ok {
		holder.resp = resp
	}
}

func Response(ctx context.Context) any {
	if holder, ok := ctx.Value(responseHolderKey{}).(*responseHolder); ok {
		return holder.resp
	}

	return nil
}
