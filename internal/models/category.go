package models

import "time"

// Category classifies posts (PostgreSQL).
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// GourdType is referenced by monitoring records.
type GourdType struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Variety is referenced by monitoring records.
type Variety struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Descriptor is the name/description pair attached when a reference is populated.
type Descriptor struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (c *Category) ToDescriptor() *Descriptor {
	return &Descriptor{ID: c.ID, Name: c.Name, Description: c.Description}
}

func (g *GourdType) ToDescriptor() *Descriptor {
	return &Descriptor{ID: g.ID, Name: g.Name, Description: g.Description}
}

func (v *Variety) ToDescriptor() *Descriptor {
	return &Descriptor{ID: v.ID, Name: v.Name, Description: v.Description}
}

// CreateDescriptorRequest creates a category, gourd type or variety.
type CreateDescriptorRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}
