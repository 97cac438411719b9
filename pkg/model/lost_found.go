package model

import "time"

type LostFoundItem struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ItemName    string    `json:"item_name" bson:"item_name" validate:"required,min=2,max=120"`
	Description string    `json:"description" bson:"description" validate:"required,min=1,max=2000"`
	Date        string    `json:"date" bson:"date" validate:"required,calendar_date"`
	Location    string    `json:"location" bson:"location" validate:"required,min=1,max=200"`
	Contact     string    `json:"contact" bson:"contact" validate:"required,min=1,max=200"`
	UserID      string    `json:"user_id" bson:"user_id" validate:"required,max=128"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

type LostFoundRequest struct {
	ItemName    string `json:"item_name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Contact     string `json:"contact"`
}
