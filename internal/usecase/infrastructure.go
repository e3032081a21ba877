package usecase

import "context"

// ImagesInfra orchestrates the upload of a product image to the object store
// and a best-effort cleanup when a later step fails.
type ImagesInfra interface {
	UploadImage(ctx context.Context, req *UploadImageReq) (*UploadImageRes, error)
	CleanupImages(keys []string)
}

// MessageProducer delivers raw catalog events to the message broker.
type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}
