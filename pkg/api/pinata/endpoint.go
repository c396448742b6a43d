package pinata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/quinty-io/backend/config"
	"github.com/quinty-io/backend/pkg/api"
)

type Endpoint struct {
	Token string

	apiGenerator     api.Generator
	gatewayGenerator api.Generator
}

func New(cfg config.PinataConfigs) *Endpoint {
	return &Endpoint{
		Token:            cfg.Token,
		apiGenerator:     api.NewGenerator("https://api.pinata.cloud"),
		gatewayGenerator: api.NewGenerator(cfg.Gateway),
	}
}

func (e *Endpoint) PinFile(ctx context.Context, name string, f io.Reader) (string, error) {
	resp, err := e.apiGenerator.New("/pinning/pinFileToIPFS").
		Body(api.FormData{
			Files: map[string]api.FormDataFile{
				"file": {
					Name:    name,
					Content: f,
				},
			},
		}).
		POST(ctx, api.OAuth2("Bearer", e.Token))
	if err != nil {
		return "", err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return "", errors.New("fail to push ipfs")
	}

	ipfs, err := body.GetString("IpfsHash")
	if err != nil {
		return "", err
	}

	return ipfs, nil
}

func (e *Endpoint) PinJSON(ctx context.Context, name string, obj any) (string, error) {
	content, err := json.Marshal(obj)
	if err != nil {
		return "", err
	}

	resp, err := e.apiGenerator.New("/pinning/pinJSONToIPFS").
		Body(api.JSON{
			"pinataMetadata": api.JSON{"name": name},
			"pinataContent":  json.RawMessage(content),
		}).
		POST(ctx, api.OAuth2("Bearer", e.Token))
	if err != nil {
		return "", err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return "", errors.New("fail to push ipfs")
	}

	ipfs, err := body.GetString("IpfsHash")
	if err != nil {
		return "", err
	}

	return ipfs, nil
}

func (e *Endpoint) FetchMetadata(ctx context.Context, cid string) (Metadata, error) {
	resp, err := e.gatewayGenerator.New("/ipfs/%s", cid).GET(ctx)
	if err != nil {
		return Metadata{}, err
	}

	if resp.Code != 200 {
		return Metadata{}, fmt.Errorf("invalid status code %d", resp.Code)
	}

	metadata := Metadata{}
	if err := json.Unmarshal(resp.RawBody, &metadata); err != nil {
		return Metadata{}, err
	}

	return metadata, nil
}
