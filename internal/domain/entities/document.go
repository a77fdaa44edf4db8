package entities

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// DocumentKind selects upload validation rules and where the URL lands on the profile
type DocumentKind string

const (
	DocumentKindCV       DocumentKind = "cv"
	DocumentKindAvatar   DocumentKind = "avatar"
	DocumentKindDocument DocumentKind = "document"
)

// UploadRule limits what a kind accepts
type UploadRule struct {
	Extensions   []string
	MaxBytes     int64
	ResourceType string
}

// UploadRules holds the accepted extensions and size limits per kind
var UploadRules = map[DocumentKind]UploadRule{
	DocumentKindCV:       {Extensions: []string{".pdf", ".doc", ".docx"}, MaxBytes: 10 << 20, ResourceType: "raw"},
	DocumentKindAvatar:   {Extensions: []string{".jpg", ".jpeg", ".png", ".webp"}, MaxBytes: 5 << 20, ResourceType: "image"},
	DocumentKindDocument: {Extensions: []string{".pdf", ".jpg", ".jpeg", ".png"}, MaxBytes: 10 << 20, ResourceType: "auto"},
}

// Allows reports whether ext (with dot, lower case) is accepted
func (r UploadRule) Allows(ext string) bool {
	for _, e := range r.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Document is a stored upload
type Document struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"userId"`
	Kind        DocumentKind `json:"kind"`
	URL         string       `json:"url"`
	PublicID    string       `json:"publicId"`
	FileName    string       `json:"fileName"`
	SizeBytes   int64        `json:"sizeBytes"`
	ContentType string       `json:"contentType,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// UploadedFile is the outcome of storing bytes with the storage provider
type UploadedFile struct {
	URL      string
	PublicID string
}

// UploadInput is one file received from a multipart form
type UploadInput struct {
	Kind        DocumentKind
	FileName    string
	Size        int64
	ContentType string
	Body        io.Reader
}
