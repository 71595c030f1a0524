package models

import "time"

// Image is an uploaded file stored in the asset store (MongoDB). Posts
// reference images by the returned URL string only, so the relational side
// never holds a foreign key to this document.
type Image struct {
	ID          string    `json:"id" bson:"_id"`
	ContentType string    `json:"content_type" bson:"content_type"`
	Data        []byte    `json:"-" bson:"data"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// URL returns the public path the stored image is served from.
func (i Image) URL() string {
	return "/images/" + i.ID
}
