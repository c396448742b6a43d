package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quinty-io/backend/pkg/errorx"
	"github.com/quinty-io/backend/pkg/xcontext"
)

type Response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func NewResponse(data any) Response {
	return Response{Code: 0, Data: data}
}

func NewErrorResponse(err error) Response {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return Response{
			Code:  int64(errx.Code),
			Error: errx.Message,
		}
	}

	return Response{
		Code:  int64(errorx.Unknown.Code),
		Error: errorx.Unknown.Message,
	}
}

func writeResponse(ctx context.Context, resp Response) {
	if err := WriteJson(xcontext.HTTPWriter(ctx), resp); err != nil {
		xcontext.Logger(ctx).Errorf("cannot write the response: %v", err)
	}
}

func WriteJson(w http.ResponseWriter, resp any) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(b); err != nil {
		return err
	}

	return nil
}
