package domain

// Status is the lifecycle state shared by campaigns, ad sets and ads.
type Status string

const (
	StatusActive  Status = "Active"
	StatusPaused  Status = "Paused"
	StatusDeleted Status = "Deleted"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusDeleted:
		return true
	}
	return false
}

// IsDeleted returns true for soft-deleted records.
func (s Status) IsDeleted() bool {
	return s == StatusDeleted
}

// CreativeType is the kind of media an ad carries.
type CreativeType string

const (
	CreativeImage    CreativeType = "Image"
	CreativeVideo    CreativeType = "Video"
	CreativeCarousel CreativeType = "Carousel"
)

// Valid reports whether t is one of the known creative types.
func (t CreativeType) Valid() bool {
	switch t {
	case CreativeImage, CreativeVideo, CreativeCarousel:
		return true
	}
	return false
}
