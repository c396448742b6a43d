package model

type UploadImageRequest struct{}

type UploadImageResponse struct {
	Url string `json:"url"`
}
