package pinata

import (
	"context"
	"io"
)

type Metadata struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Deliverables []string `json:"deliverables"`
	Skills       []string `json:"skills"`
	Images       []string `json:"images"`
	Deadline     int64    `json:"deadline"`
	BountyType   string   `json:"bountyType"`
}

type IEndpoint interface {
	PinFile(ctx context.Context, name string, f io.Reader) (string, error)
	PinJSON(ctx context.Context, name string, obj any) (string, error)
	FetchMetadata(ctx context.Context, cid string) (Metadata, error)
}
