package dto

// CreatePostDTO carries the non-file fields of the multipart create
// request. The photo arrives as a separate form file named "photo".
type CreatePostDTO struct {
	Title        string `form:"title"        json:"title" validate:"required"`
	Content      string `form:"content"      json:"content" validate:"required"`
	CategoryID   string `form:"categoryId"   json:"categoryId,omitempty"`
	StartingTime string `form:"startingTime" json:"startingTime,omitempty"` // RFC 3339, optional
}

// UpdatePostDTO replaces only the fields that are present. An empty
// photo keeps the stored one.
type UpdatePostDTO struct {
	Title        *string `form:"title"        json:"title,omitempty"`
	Content      *string `form:"content"      json:"content,omitempty"`
	CategoryID   *string `form:"categoryId"   json:"categoryId,omitempty"`
	StartingTime *string `form:"startingTime" json:"startingTime,omitempty"`
}
