package homepage

import "time"

const defaultDescription = "Transform your space with premium furniture and cutting-edge AR technology. " +
	"See how furniture looks in your home before you buy!"

// Defaults returns the stock homepage, stamped with now.
func Defaults(now time.Time) *Content {
	return &Content{
		HeroSection: HeroSection{
			Title:               "Welcome to\nFurniCraft",
			Subtitle:            "AR Furniture Visualization",
			Description:         defaultDescription,
			PrimaryButtonText:   "Browse Furniture",
			SecondaryButtonText: "Try AR Demo",
			BackgroundImage:     "/images/hero-bg.jpg",
			LogoImage:           "/images/logo.png",
		},
		Features: []Feature{
			{ID: "1", Title: "Premium Quality", Description: "Handcrafted furniture made from the finest materials with attention to every detail", Icon: "Home", Color: "blue", Enabled: true},
			{ID: "2", Title: "AR Visualization", Description: "See exactly how furniture will look in your space with our advanced AR technology", Icon: "Sparkles", Color: "purple", Enabled: true},
			{ID: "3", Title: "Free Assembly", Description: "Professional delivery and assembly service included with every purchase", Icon: "Truck", Color: "green", Enabled: true},
		},
		FeaturedProducts: []FeaturedItem{
			{ID: "1", Name: "Modern Sectional Sofa", Description: "Comfortable 3-seater with premium fabric", Price: "₹79,900", Rating: "4.8", Image: "/images/sofa-modern.png", AREnabled: true, Enabled: true},
			{ID: "2", Name: "Dining Table Set", Description: "Elegant 6-seater solid oak wood", Price: "₹59,900", Rating: "4.6", Image: "/images/dining-table.png", AREnabled: true, Enabled: true},
			{ID: "3", Name: "Ergonomic Office Chair", Description: "High-back with lumbar support", Price: "₹22,900", Rating: "4.7", Image: "/images/office-chair.png", AREnabled: true, Enabled: true},
		},
		StatsSection: StatsSection{
			Stat1:   Stat{Value: "500+", Label: "Furniture Pieces"},
			Stat2:   Stat{Value: "50+", Label: "AR Models"},
			Stat3:   Stat{Value: "2000+", Label: "Happy Homes"},
			Stat4:   Stat{Value: "24/7", Label: "Support"},
			Enabled: true,
		},
		TrustIndicators: []TrustIndicator{
			{ID: "1", Title: "2-Year Warranty", Description: "Comprehensive warranty on all furniture pieces", Icon: "Shield", Enabled: true},
			{ID: "2", Title: "Free Delivery", Description: "Professional delivery and assembly included", Icon: "Truck", Enabled: true},
			{ID: "3", Title: "30-Day Returns", Description: "Not satisfied? Return within 30 days", Icon: "Home", Enabled: true},
		},
		SEOSettings: SEOSettings{
			MetaTitle:       "FurniCraft - Premium AR Furniture Store",
			MetaDescription: defaultDescription,
			Keywords:        "furniture, AR, home decor, interior design, augmented reality",
			OGImage:         "/images/og-image.jpg",
		},
		LastUpdated: now.UTC(),
	}
}
