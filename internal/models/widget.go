package models

import "time"

// Widget is the sample resource exposed under /api/v1/widgets.
type Widget struct {
	ID          string    `json:"id" format:"uuid"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateWidgetRequest represents the request to create a widget
type CreateWidgetRequest struct {
	Name        string  `json:"name" validate:"required,max=100" required:"true" maxLength:"100"`
	Description *string `json:"description" validate:"omitempty,max=500" maxLength:"500"`
	Price       float64 `json:"price" validate:"gte=0" minimum:"0"`
}

// UpdateWidgetRequest represents a partial update. Absent fields are left
// unchanged; a null description clears it.
type UpdateWidgetRequest struct {
	Name        *string        `json:"name" validate:"omitempty,min=1,max=100" minLength:"1" maxLength:"100"`
	Description NullableString `json:"description"`
	Price       *float64       `json:"price" validate:"omitempty,gte=0" minimum:"0"`
}

// WidgetPath identifies a widget in the request path.
type WidgetPath struct {
	ID string `path:"id" format:"uuid" description:"Widget identifier (UUIDv7)."`
}

// UpdateWidgetInput documents PATCH /api/v1/widgets/:id.
type UpdateWidgetInput struct {
	WidgetPath
	UpdateWidgetRequest
}

// ListWidgetsQuery holds the pagination parameters of GET /api/v1/widgets.
type ListWidgetsQuery struct {
	Limit  int `form:"limit" query:"limit" minimum:"0" maximum:"100" description:"Page size, 50 when omitted."`
	Offset int `form:"offset" query:"offset" minimum:"0"`
}
