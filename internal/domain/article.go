package domain

import (
	"time"

	"github.com/google/uuid"
)

type ImageKind string

const (
	ImageKindThumbnail ImageKind = "thumbnail"
	ImageKindDetail    ImageKind = "detail"
)

type Image struct {
	Kind ImageKind
	URL  string
}

type Article struct {
	ID          uuid.UUID
	Title       string
	Author      string
	Description string
	Images      []Image
	Modified    time.Time
}
