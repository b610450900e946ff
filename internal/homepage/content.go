package homepage

import "time"

// Content is the editable homepage document.
type Content struct {
	HeroSection      HeroSection      `json:"heroSection"`
	Features         []Feature        `json:"features"`
	FeaturedProducts []FeaturedItem   `json:"featuredProducts"`
	StatsSection     StatsSection     `json:"statsSection"`
	TrustIndicators  []TrustIndicator `json:"trustIndicators"`
	SEOSettings      SEOSettings      `json:"seoSettings"`
	LastUpdated      time.Time        `json:"lastUpdated"`
}

type HeroSection struct {
	Title               string `json:"title"`
	Subtitle            string `json:"subtitle"`
	Description         string `json:"description"`
	PrimaryButtonText   string `json:"primaryButtonText"`
	SecondaryButtonText string `json:"secondaryButtonText"`
	BackgroundImage     string `json:"backgroundImage"`
	LogoImage           string `json:"logoImage"`
}

type Feature struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Enabled     bool   `json:"enabled"`
}

// FeaturedItem is a hand-picked homepage tile. Price and rating are display
// strings, not catalog values.
type FeaturedItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Rating      string `json:"rating"`
	Image       string `json:"image"`
	AREnabled   bool   `json:"arEnabled"`
	Enabled     bool   `json:"enabled"`
}

type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type StatsSection struct {
	Stat1   Stat `json:"stat1"`
	Stat2   Stat `json:"stat2"`
	Stat3   Stat `json:"stat3"`
	Stat4   Stat `json:"stat4"`
	Enabled bool `json:"enabled"`
}

type TrustIndicator struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Enabled     bool   `json:"enabled"`
}

type SEOSettings struct {
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	Keywords        string `json:"keywords"`
	OGImage         string `json:"ogImage"`
}

func (c *Content) clone() *Content {
	out := *c
	out.Features = append([]Feature(nil), c.Features...)
	out.FeaturedProducts = append([]FeaturedItem(nil), c.FeaturedProducts...)
	out.TrustIndicators = append([]TrustIndicator(nil), c.TrustIndicators...)
	return &out
}
