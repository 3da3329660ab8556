package dto

import (
	"mime/multipart"

	"hotelier/internal/domains/room/model"
	"hotelier/shared"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
)

type CreateRoomRequest struct {
	RoomNumber  string                `json:"room_number"   validate:"required,max=20"`
	Description string                `json:"description"   validate:"omitempty,max=200"`
	MaxCapacity int                   `json:"max_capacity"  validate:"required,min=1"`
	PricePerDay float64               `json:"price_per_day" validate:"required,gt=0"`
	RoomTypeID  int64                 `json:"room_type_id"  validate:"required,min=1"`
	Image       *multipart.FileHeader `json:"image"         validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
}

func (c *CreateRoomRequest) ToModel(user string, imageURL string) model.Room {
	return model.Room{
		RoomNumber:  c.RoomNumber,
		Description: c.Description,
		MaxCapacity: c.MaxCapacity,
		Status:      model.StatusActive,
		PricePerDay: c.PricePerDay,
		RoomTypeID:  c.RoomTypeID,
		Image:       imageURL,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	RoomNumber  string                `db:"room_number"   json:"room_number"   validate:"omitempty,max=20"`
	Description string                `db:"description"   json:"description"   validate:"omitempty,max=200"`
	MaxCapacity *int                  `db:"max_capacity"  json:"max_capacity"  validate:"omitempty,min=1"`
	PricePerDay *float64              `db:"price_per_day" json:"price_per_day" validate:"omitempty,gt=0"`
	RoomTypeID  *int64                `db:"room_type_id"  json:"room_type_id"  validate:"omitempty,min=1"`
	Image       *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
}

type RoomResponse struct {
	ID           int64   `json:"id"`
	RoomNumber   string  `json:"room_number"`
	Description  string  `json:"description"`
	MaxCapacity  int     `json:"max_capacity"`
	Status       string  `json:"status"`
	PricePerDay  float64 `json:"price_per_day"`
	RoomTypeID   int64   `json:"room_type_id"`
	RoomTypeName string  `json:"room_type_name"`
	Image        string  `json:"image"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.Description = model.Description
	r.MaxCapacity = model.MaxCapacity
	r.Status = model.Status
	r.PricePerDay = model.PricePerDay
	r.RoomTypeID = model.RoomTypeID
	r.RoomTypeName = model.RoomTypeName
	r.Image = model.Image
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
