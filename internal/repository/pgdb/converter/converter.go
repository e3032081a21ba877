package converter

import (
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/domain"
	"github.com/shopspring/decimal"
)

// ProductConverter maps Product rows between the database model and domain.
type ProductConverter interface {
	ToEntity(model *ProductModel) *domain.Product
	ToEntities(models []ProductModel) []domain.Product
	ToModel(entity *domain.Product) *ProductModel
}

type ProductConverterImpl struct{}

func NewProductConverterImpl() *ProductConverterImpl {
	return &ProductConverterImpl{}
}

func (c *ProductConverterImpl) ToEntity(model *ProductModel) *domain.Product {
	return &domain.Product{
		ID: model.ID,
		Draft: domain.ProductDraft{
			Name:            model.Name,
			Description:     model.Description,
			LongDescription: model.LongDescription,
			Price:           model.Price,
			Category:        domain.Category(model.Category),
			Tag:             model.Tag,
			Rating:          decimal.NewFromFloat(model.Rating),
			Reviews:         model.Reviews,
			Benefits:        model.Benefits,
			ImageURL:        model.ImageURL,
		},
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func (c *ProductConverterImpl) ToEntities(models []ProductModel) []domain.Product {
	entities := make([]domain.Product, 0, len(models))
	for i := range models {
		entities = append(entities, *c.ToEntity(&models[i]))
	}

	return entities
}

func (c *ProductConverterImpl) ToModel(entity *domain.Product) *ProductModel {
	return &ProductModel{
		ID:              entity.ID,
		Name:            entity.Draft.Name,
		Description:     entity.Draft.Description,
		LongDescription: entity.Draft.LongDescription,
		Price:           entity.Draft.Price,
		Category:        entity.Draft.Category.String(),
		Tag:             entity.Draft.Tag,
		Rating:          entity.Draft.Rating.InexactFloat64(),
		Reviews:         entity.Draft.Reviews,
		Benefits:        entity.Draft.Benefits,
		ImageURL:        entity.Draft.ImageURL,
		CreatedAt:       entity.CreatedAt,
		UpdatedAt:       entity.UpdatedAt,
	}
}

// AdminUserConverter maps admin account rows to domain.
type AdminUserConverter interface {
	ToEntity(model *AdminUserModel) *domain.AdminUser
}

type AdminUserConverterImpl struct{}

func NewAdminUserConverterImpl() *AdminUserConverterImpl {
	return &AdminUserConverterImpl{}
}

func (c *AdminUserConverterImpl) ToEntity(model *AdminUserModel) *domain.AdminUser {
	return &domain.AdminUser{
		ID:           model.ID,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		CreatedAt:    model.CreatedAt,
	}
}

// ContactMessageConverter maps contact-form rows to domain.
type ContactMessageConverter interface {
	ToEntity(model *ContactMessageModel) *domain.ContactMessage
}

type ContactMessageConverterImpl struct{}

func NewContactMessageConverterImpl() *ContactMessageConverterImpl {
	return &ContactMessageConverterImpl{}
}

func (c *ContactMessageConverterImpl) ToEntity(model *ContactMessageModel) *domain.ContactMessage {
	return &domain.ContactMessage{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		Subject:   model.Subject,
		Message:   model.Message,
		CreatedAt: model.CreatedAt,
	}
}
