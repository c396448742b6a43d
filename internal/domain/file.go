package domain

import (
	"context"

	"github.com/quinty-io/backend/internal/common"
	"github.com/quinty-io/backend/internal/model"
	"github.com/quinty-io/backend/pkg/errorx"
	"github.com/quinty-io/backend/pkg/storage"
)

type FileDomain interface {
	UploadImage(ctx context.Context, req *model.UploadImageRequest) (*model.UploadImageResponse, error)
}

type fileDomain struct {
	fileStorage storage.Storage
}

func NewFileDomain(fileStorage storage.Storage) *fileDomain {
	return &fileDomain{fileStorage: fileStorage}
}

// UploadImage stores the resized variants of a multipart "image" field and
// returns the url of the largest one.
func (d *fileDomain) UploadImage(
	ctx context.Context, req *model.UploadImageRequest,
) (*model.UploadImageResponse, error) {
	resp, err := common.ProcessImage(ctx, d.fileStorage, "image")
	if err != nil {
		return nil, err
	}

	if len(resp) == 0 {
		return nil, errorx.Unknown
	}

	return &model.UploadImageResponse{Url: resp[0].Url}, nil
}
