package entity

import "time"

const (
	DefaultFontSize = 30
	DefaultX        = 50
	DefaultY        = 50
	DefaultAngle    = 0
	DefaultColor    = "white"
)

// OverlayRequest holds the overlay form fields. Nil optional fields were not
// supplied by the client and resolve to defaults in Descriptor.
type OverlayRequest struct {
	Text     string
	FontSize *int
	X        *int
	Y        *int
	Angle    *int
	Color    *string
}

// TransformationDescriptor is an OverlayRequest with defaults applied.
type TransformationDescriptor struct {
	Text     string `json:"text"`
	FontSize int    `json:"fontSize"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Angle    int    `json:"angle"`
	Color    string `json:"color"`
}

func (r OverlayRequest) Descriptor() TransformationDescriptor {
	d := TransformationDescriptor{
		Text:     r.Text,
		FontSize: DefaultFontSize,
		X:        DefaultX,
		Y:        DefaultY,
		Angle:    DefaultAngle,
		Color:    DefaultColor,
	}
	if r.FontSize != nil {
		d.FontSize = *r.FontSize
	}
	if r.X != nil {
		d.X = *r.X
	}
	if r.Y != nil {
		d.Y = *r.Y
	}
	if r.Angle != nil {
		d.Angle = *r.Angle
	}
	if r.Color != nil {
		d.Color = *r.Color
	}
	return d
}

// RemoteAsset is the provider's record of one uploaded file.
type RemoteAsset struct {
	AssetID      string
	CanonicalURL string
}

type OverlayResult struct {
	AssetID        string
	TransformedURL string
	OriginalURL    string
	Parameters     TransformationDescriptor
}

type OverlayResponse struct {
	Success     bool                     `json:"success"`
	Message     string                   `json:"message"`
	URL         string                   `json:"url"`
	OriginalURL string                   `json:"originalUrl"`
	Parameters  TransformationDescriptor `json:"parameters"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// OverlayEvent is published once per successfully processed upload.
type OverlayEvent struct {
	AssetID     string                   `json:"assetId"`
	URL         string                   `json:"url"`
	OriginalURL string                   `json:"originalUrl"`
	Parameters  TransformationDescriptor `json:"parameters"`
	CreatedAt   time.Time                `json:"createdAt"`
}
