package model

import "hotelier/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldRoomNumber  = "room_number"
	FieldDescription = "description"
	FieldMaxCapacity = "max_capacity"
	FieldStatus      = "status"
	FieldPricePerDay = "price_per_day"
	FieldRoomTypeID  = "room_type_id"
	FieldImage       = "image"
)

const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

type Room struct {
	ID           int64   `db:"id"`
	RoomNumber   string  `db:"room_number"`
	Description  string  `db:"description"`
	MaxCapacity  int     `db:"max_capacity"`
	Status       string  `db:"status"`
	PricePerDay  float64 `db:"price_per_day"`
	RoomTypeID   int64   `db:"room_type_id"`
	Image        string  `db:"image"`
	RoomTypeName string  `db:"room_type_name" table:"room_types" column:"name"`
	model.Metadata
}

func (r Room) GetJoinQuery() string {
	return "LEFT JOIN room_types ON room_types.id = rooms.room_type_id"
}
