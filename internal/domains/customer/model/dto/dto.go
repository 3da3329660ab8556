package dto

import (
	"strings"

	"hotelier/internal/domains/customer/model"
	"hotelier/shared"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
)

type CreateCustomerRequest struct {
	FullName string  `json:"full_name" validate:"required,max=100"`
	Phone    string  `json:"phone"     validate:"omitempty,max=20"`
	Email    string  `json:"email"     validate:"required,email,max=100"`
	Birthday *string `json:"birthday"  validate:"omitempty,datetime=2006-01-02"`
	Password string  `json:"password"  validate:"required,min=8"`
}

func (c *CreateCustomerRequest) ToModel(user string, hashedPassword string) model.Customer {
	return model.Customer{
		FullName: c.FullName,
		Phone:    c.Phone,
		Email:    strings.ToLower(c.Email),
		Birthday: c.Birthday,
		Status:   model.StatusActive,
		Password: hashedPassword,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCustomerRequest struct {
	FullName string  `db:"full_name" json:"full_name" validate:"omitempty,max=100"`
	Phone    string  `db:"phone"     json:"phone"     validate:"omitempty,max=20"`
	Birthday *string `db:"birthday"  json:"birthday"  validate:"omitempty,datetime=2006-01-02"`
	Status   string  `db:"status"    json:"status"    validate:"omitempty,oneof=active banned"`
}

type CustomerResponse struct {
	ID       int64   `json:"id"`
	FullName string  `json:"full_name"`
	Phone    string  `json:"phone"`
	Email    string  `json:"email"`
	Birthday *string `json:"birthday,omitempty"`
	Status   string  `json:"status"`
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(model model.Customer) {
	r.ID = model.ID
	r.FullName = model.FullName
	r.Phone = model.Phone
	r.Email = model.Email
	r.Birthday = model.Birthday
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromModels(models []model.Customer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Customers = make([]CustomerResponse, len(models))
	for i, mod := range models {
		r.Customers[i].FromModel(mod)
	}
}
