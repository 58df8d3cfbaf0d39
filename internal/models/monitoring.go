package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MonitoringInProgress = "In Progress"
	MonitoringCompleted  = "Completed"
	MonitoringFailed     = "Failed"
)

// Monitoring tracks one pollination batch from pollination to harvest.
type Monitoring struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID             uint               `json:"user_id" bson:"user_id"`
	GourdTypeID        uint               `json:"gourd_type" bson:"gourd_type"`
	VarietyID          uint               `json:"variety" bson:"variety"`
	DateOfPollination  time.Time          `json:"date_of_pollination" bson:"date_of_pollination"`
	PollinatedFlowers  int                `json:"pollinated_flowers" bson:"pollinated_flowers"`
	FruitsHarvested    int                `json:"fruits_harvested" bson:"fruits_harvested"`
	DateOfFinalization *time.Time         `json:"date_of_finalization" bson:"date_of_finalization"`
	Status             string             `json:"status" bson:"status"`
}

type CreateMonitoringRequest struct {
	GourdType          uint       `json:"gourd_type" validate:"required"`
	Variety            uint       `json:"variety" validate:"required"`
	DateOfPollination  *time.Time `json:"date_of_pollination" validate:"required"`
	PollinatedFlowers  *int       `json:"pollinated_flowers" validate:"required,min=0"`
	FruitsHarvested    *int       `json:"fruits_harvested,omitempty" validate:"omitempty,min=0"`
	DateOfFinalization *time.Time `json:"date_of_finalization,omitempty"`
	Status             string     `json:"status,omitempty" validate:"omitempty,oneof='In Progress' Completed Failed"`
}

// UpdateMonitoringRequest merges present fields into the stored record.
type UpdateMonitoringRequest struct {
	GourdType          uint       `json:"gourd_type,omitempty"`
	Variety            uint       `json:"variety,omitempty"`
	DateOfPollination  *time.Time `json:"date_of_pollination,omitempty"`
	PollinatedFlowers  *int       `json:"pollinated_flowers,omitempty" validate:"omitempty,min=0"`
	FruitsHarvested    *int       `json:"fruits_harvested,omitempty" validate:"omitempty,min=0"`
	DateOfFinalization *time.Time `json:"date_of_finalization,omitempty"`
	Status             string     `json:"status,omitempty" validate:"omitempty,oneof='In Progress' Completed Failed"`
}

type MonitoringView struct {
	ID                 primitive.ObjectID `json:"id"`
	User               *UserPublic        `json:"user"`
	GourdType          *Descriptor        `json:"gourd_type"`
	Variety            *Descriptor        `json:"variety"`
	DateOfPollination  time.Time          `json:"date_of_pollination"`
	PollinatedFlowers  int                `json:"pollinated_flowers"`
	FruitsHarvested    int                `json:"fruits_harvested"`
	DateOfFinalization *time.Time         `json:"date_of_finalization"`
	Status             string             `json:"status"`
}
