package model

import "hotelier/shared/model"

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID       = "id"
	FieldFullName = "full_name"
	FieldPhone    = "phone"
	FieldEmail    = "email"
	FieldBirthday = "birthday"
	FieldStatus   = "status"
	FieldPassword = "password"
)

const (
	StatusActive = "active"
	StatusBanned = "banned"
)

type Customer struct {
	ID       int64   `db:"id"`
	FullName string  `db:"full_name"`
	Phone    string  `db:"phone"`
	Email    string  `db:"email"`
	Birthday *string `db:"birthday"`
	Status   string  `db:"status"`
	Password string  `db:"password"`
	model.Metadata
}
