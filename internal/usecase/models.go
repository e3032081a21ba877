package usecase

import (
	"time"

	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/domain"
)

// CATALOG USECASE

// SaveProductReq is one submission of the product editor. A nil ProductID is a
// create; a present one is a full-replace update against that identifier.
type SaveProductReq struct {
	SessionID string
	ProductID *int64
	Draft     *domain.ProductDraft
	Image     *ProductImage // nil when no new file was selected
}

// ProductImage is an image file received through multipart/form-data.
type ProductImage struct {
	Data     []byte
	MimeType string // Content-Type sniffed from the bytes
	Size     int64
	Name     string // original file name; its extension is preserved
}

type DeleteProductReq struct {
	ID        int64
	Confirmed bool
}

// UploadImageReq carries the new file to the images infrastructure.
type UploadImageReq struct {
	Image *ProductImage
}

// UploadImageRes is the stored object key and its public URL.
type UploadImageRes struct {
	Key       string
	PublicURL string
}

// AUTH USECASE

type LoginReq struct {
	Email    string
	Password string
}

type LoginRes struct {
	Token   string
	Session *domain.Session
}

// CONTACT USECASE

type SubmitContactReq struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// OUTBOX

const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// OutboxEvent is a catalog mutation recorded in the same transaction as the
// mutation itself and published to the broker asynchronously.
type OutboxEvent struct {
	ID        int64
	EventID   string // uuid, stable across redeliveries
	EventType string
	ProductID int64
	Payload   []byte // JSON
	CreatedAt time.Time
}

type WriteRawMessageReq struct {
	Key     string
	Payload []byte
}

// MAPPERS

func NewSaveProductReq(sessionID string, productID *int64, draft *domain.ProductDraft, image *ProductImage) *SaveProductReq {
	return &SaveProductReq{
		SessionID: sessionID,
		ProductID: productID,
		Draft:     draft,
		Image:     image,
	}
}

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewDeleteProductReq(id int64, confirmed bool) *DeleteProductReq {
	return &DeleteProductReq{ID: id, Confirmed: confirmed}
}

func NewUploadImageReq(image *ProductImage) *UploadImageReq {
	return &UploadImageReq{Image: image}
}

func NewUploadImageRes(key, publicURL string) *UploadImageRes {
	return &UploadImageRes{Key: key, PublicURL: publicURL}
}

func NewLoginReq(email, password string) *LoginReq {
	return &LoginReq{Email: email, Password: password}
}

func NewLoginRes(token string, session *domain.Session) *LoginRes {
	return &LoginRes{Token: token, Session: session}
}

func NewSubmitContactReq(name, email, subject, message string) *SubmitContactReq {
	return &SubmitContactReq{
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: message,
	}
}

func NewOutboxEvent(eventID, eventType string, productID int64, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		ProductID: productID,
		Payload:   payload,
	}
}

func NewWriteRawMessageReq(key string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{Key: key, Payload: payload}
}
