// Package transform builds Cloudinary delivery URLs that render a text
// overlay on a stored animated image. Building a URL never touches the
// network.
package transform

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/asset"
	cldconfig "github.com/cloudinary/cloudinary-go/v2/config"

	"github.com/ds124wfegd/gif-overlay/internal/entity"
)

const (
	DefaultFontFamily = "Arial"

	gravity = "north_west"
	format  = ".gif"
)

var (
	colorName = regexp.MustCompile(`^[A-Za-z]+$`)
	colorHex  = regexp.MustCompile(`^(#|rgb:)([0-9A-Fa-f]{3}|[0-9A-Fa-f]{4}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{8})$`)

	textEscaper = strings.NewReplacer("%2C", "%252C", "%2F", "%252F")
)

type Options struct {
	CloudName  string
	APIKey     string
	APISecret  string
	FontFamily string
	// Host overrides the delivery host, e.g. for a private CDN.
	Host     string
	Insecure bool
}

type Builder struct {
	fontFamily string
	conf       cldconfig.Configuration
}

func NewBuilder(opts Options) (*Builder, error) {
	if opts.FontFamily == "" {
		opts.FontFamily = DefaultFontFamily
	}

	conf, err := cldconfig.NewFromParams(opts.CloudName, opts.APIKey, opts.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary url config: %w", err)
	}
	conf.URL.Secure = !opts.Insecure
	conf.URL.Analytics = false
	if opts.Host != "" {
		conf.URL.SecureCName = opts.Host
		conf.URL.CName = opts.Host
	}

	return &Builder{fontFamily: opts.FontFamily, conf: *conf}, nil
}

// BuildURL returns the retrieval URL of assetID with the descriptor's text
// overlay applied, anchored north_west and delivered as GIF.
func (b *Builder) BuildURL(assetID string, d entity.TransformationDescriptor) (string, error) {
	conf := b.conf
	img, err := asset.Image(assetID+format, &conf)
	if err != nil {
		return "", fmt.Errorf("build url: %w", err)
	}
	img.Transformation = b.Transformation(d)

	u, err := img.String()
	if err != nil {
		return "", fmt.Errorf("build url for %q: %w", assetID, err)
	}
	return u, nil
}

// Transformation renders the descriptor as one transformation component with
// parameters in alphabetical order, as the Cloudinary SDKs emit them.
func (b *Builder) Transformation(d entity.TransformationDescriptor) string {
	params := []string{
		"a_" + strconv.Itoa(d.Angle),
		"co_" + Color(d.Color),
		"g_" + gravity,
		"l_text:" + url.PathEscape(b.fontFamily) + "_" + strconv.Itoa(d.FontSize) + ":" + EscapeText(d.Text),
		"x_" + strconv.Itoa(d.X),
		"y_" + strconv.Itoa(d.Y),
	}
	return strings.Join(params, ",")
}

// EscapeText URL-encodes overlay text. Commas and slashes are structural in
// the transformation grammar and must be double-escaped.
func EscapeText(text string) string {
	return textEscaper.Replace(url.PathEscape(text))
}

// Color maps a user color to the grammar: names pass through, "#rrggbb"
// becomes "rgb:rrggbb".
func Color(c string) string {
	if strings.HasPrefix(c, "#") {
		return "rgb:" + strings.ToLower(c[1:])
	}
	return c
}

// ValidColor reports whether c is a color name, "#hex" or "rgb:hex" value.
func ValidColor(c string) bool {
	return colorName.MatchString(c) || colorHex.MatchString(c)
}
