package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Nutrients holds the string-encoded nutrient quantities of a recipe plus the
// numeric calorie count derived from Calories at ingestion time.
type Nutrients struct {
	Calories            *string  `gorm:"size:64" json:"calories" bson:"calories,omitempty"`
	CarbohydrateContent *string  `gorm:"size:64" json:"carbohydrateContent" bson:"carbohydrateContent,omitempty"`
	CholesterolContent  *string  `gorm:"size:64" json:"cholesterolContent" bson:"cholesterolContent,omitempty"`
	FiberContent        *string  `gorm:"size:64" json:"fiberContent" bson:"fiberContent,omitempty"`
	ProteinContent      *string  `gorm:"size:64" json:"proteinContent" bson:"proteinContent,omitempty"`
	SaturatedFatContent *string  `gorm:"size:64" json:"saturatedFatContent" bson:"saturatedFatContent,omitempty"`
	SodiumContent       *string  `gorm:"size:64" json:"sodiumContent" bson:"sodiumContent,omitempty"`
	SugarContent        *string  `gorm:"size:64" json:"sugarContent" bson:"sugarContent,omitempty"`
	FatContent          *string  `gorm:"size:64" json:"fatContent" bson:"fatContent,omitempty"`
	CaloriesKcal        *float64 `gorm:"index" json:"calories_kcal" bson:"calories_kcal,omitempty"`
}

// Recipe is a read-only catalog entry. Recipes are only ever written by the
// ingestion job.
type Recipe struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id" bson:"_id"`
	Title       string    `gorm:"type:text;not null" json:"title" bson:"title"`
	Cuisine     *string   `gorm:"size:255;index" json:"cuisine" bson:"cuisine,omitempty"`
	Rating      *float64  `gorm:"index" json:"rating" bson:"rating,omitempty"`
	PrepTime    *float64  `json:"prep_time" bson:"prep_time,omitempty"`
	CookTime    *float64  `json:"cook_time" bson:"cook_time,omitempty"`
	TotalTime   *float64  `gorm:"index" json:"total_time" bson:"total_time,omitempty"`
	Description *string   `gorm:"type:text" json:"description" bson:"description,omitempty"`
	Serves      *string   `gorm:"size:255" json:"serves" bson:"serves,omitempty"`
	Nutrients   Nutrients `gorm:"embedded;embeddedPrefix:nutrients_" json:"nutrients" bson:"nutrients"`
}

// TableName pins the table name regardless of naming strategy.
func (Recipe) TableName() string {
	return "recipes"
}

// BeforeCreate assigns an id to recipes that don't have one yet.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
