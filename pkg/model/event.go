package model

import "time"

type Event struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Title       string    `json:"title" bson:"title" validate:"required,min=2,max=200"`
	Description string    `json:"description" bson:"description" validate:"required,min=1,max=2000"`
	Date        string    `json:"date" bson:"date" validate:"required,calendar_date"`
	Time        string    `json:"time" bson:"time" validate:"required,time_of_day"`
	Location    string    `json:"location" bson:"location" validate:"required,min=1,max=200"`
	CreatedBy   string    `json:"created_by" bson:"created_by" validate:"required,max=128"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

type EventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
}
