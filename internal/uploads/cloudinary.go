package uploads

import (
	"context"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader загружает аватары в Cloudinary
type Uploader struct {
	cld *cloudinary.Cloudinary
}

func New(cloudName, apiKey, apiSecret string) (*Uploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &Uploader{cld: cld}, nil
}

// UploadAvatar загружает файл и возвращает https-ссылку на него
func (u *Uploader) UploadAvatar(ctx context.Context, file *multipart.FileHeader) (string, error) {
	raw, err := file.Open()
	if err != nil {
		return "", err
	}
	defer raw.Close()

	resp, err := u.cld.Upload.Upload(ctx, raw, uploader.UploadParams{PublicID: file.Filename})
	if err != nil {
		return "", err
	}

	return resp.SecureURL, nil
}
