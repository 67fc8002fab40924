package app

import (
	"context"
	"net/http"

	zlog "github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/phenrril/skywholesale/internal/adapters/httpserver"
	"github.com/phenrril/skywholesale/internal/adapters/repo/memory"
	"github.com/phenrril/skywholesale/internal/config"
	"github.com/phenrril/skywholesale/internal/domain"
	"github.com/phenrril/skywholesale/internal/pricing"
	"github.com/phenrril/skywholesale/internal/usecase"
)

// App holds the session: one catalog and one cart, both in memory.
type App struct {
	Config    config.Config
	Products  *memory.ProductRepo
	Cart      *memory.CartRepo
	ProductUC *usecase.ProductUC
	CartUC    *usecase.CartUC
}

func NewApp(cfg config.Config) *App {
	var seed []domain.Product
	if cfg.SeedCatalog {
		seed = SeedProducts()
	}
	prodRepo := memory.NewProductRepo(seed)
	cartRepo := memory.NewCartRepo()

	a := &App{
		Config:    cfg,
		Products:  prodRepo,
		Cart:      cartRepo,
		ProductUC: &usecase.ProductUC{Products: prodRepo},
		CartUC:    &usecase.CartUC{Cart: cartRepo, Products: prodRepo, Rules: cfg.Rules},
	}
	zlog.Info().
		Int("products", len(prodRepo.List(context.Background()))).
		Str("bulk_threshold", cfg.Rules.BulkDiscountThreshold.String()).
		Str("free_shipping_threshold", cfg.Rules.FreeShippingThreshold.String()).
		Msg("session ready")
	return a
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.ProductUC, a.CartUC, a.Config.MaxImageBytes)
}

func placeholder(title string) string {
	return "https://placehold.co/600x400/png?text=" + title
}

// SeedProducts is the catalog a fresh session opens with.
func SeedProducts() []domain.Product {
	green := domain.Badge{Text: "IN STOCK", Color: domain.BadgeGreen}
	best := domain.Badge{Text: "BESTSELLER", Color: domain.BadgePrimary}
	limited := domain.Badge{Text: "LIMITED STOCK", Color: domain.BadgeOrange}
	arrival := domain.Badge{Text: "NEW ARRIVAL", Color: domain.BadgeOutline}

	prods := []domain.Product{
		{
			ID:            1,
			Brand:         "Sky Blue Essentials",
			Title:         "Blue Raspberry Rock Candy",
			BasePrice:     decimal.RequireFromString("45.00"),
			Type:          domain.TypeCase,
			UnitPriceText: "$0.45 per unit (100 units/case)",
			MOQ:           "10 Cases",
			Shipping:      "Ships 24h",
			ShippingIcon:  "local_shipping",
			Description:   "Premium blue raspberry flavored rock candy strings. Perfect for candy buffets, party favors, and high-end retail displays. Made with pure cane sugar and natural flavorings.",
			CustomBadges:  []domain.Badge{green, best},
			Image:         placeholder("Rock%20Candy"),
		},
		{
			ID:            2,
			Brand:         "Artisanal Crunch",
			Title:         "Roasted Salted Almonds",
			BasePrice:     decimal.RequireFromString("128.50"),
			Type:          domain.TypeCase,
			UnitPriceText: "$5.35 per bag (24 bags/case)",
			MOQ:           "5 Cases",
			Shipping:      "Organic",
			ShippingIcon:  "eco",
			Description:   "Slow-roasted almonds lightly dusted with sea salt. Packaged in resealable retail-ready bags. Sourced from certified organic orchards in California.",
			CustomBadges:  []domain.Badge{limited},
			Image:         placeholder("Almonds"),
		},
		{
			ID:            3,
			Brand:         "Vintage Sweets Co.",
			Title:         "Classic Cream Soda Pack",
			BasePrice:     decimal.RequireFromString("32.20"),
			Type:          domain.TypeCase,
			UnitPriceText: "$1.34 per bottle (24 bottles/case)",
			MOQ:           "20 Cases",
			Shipping:      "Glass Bottles",
			ShippingIcon:  "wine_bar",
			Description:   "Old-fashioned vanilla cream soda in classic glass bottles. Made with real cane sugar and natural vanilla bean extract for a nostalgic taste.",
			CustomBadges:  []domain.Badge{arrival},
			Image:         placeholder("Cream%20Soda"),
		},
		{
			ID:            4,
			Brand:         "Global Treats Ltd.",
			Title:         "Jumbo Gummy Bear 5lb Bag",
			BasePrice:     decimal.RequireFromString("18.75"),
			Type:          domain.TypeUnit,
			UnitPriceText: "$75.00 per case (4 units/case)",
			MOQ:           "25 Cases",
			Shipping:      "Pre-Order",
			ShippingIcon:  "schedule",
			Description:   "Giant 5lb bag of assorted fruit gummy bears. Ideal for bulk bins and repackaging. Flavors include cherry, lime, lemon, orange, and pineapple.",
			Image:         placeholder("Gummy%20Bears"),
		},
		{
			ID:            5,
			Brand:         "Sky Blue Essentials",
			Title:         "Sea Salt Dark Chocolate...",
			BasePrice:     decimal.RequireFromString("84.00"),
			Type:          domain.TypeCase,
			UnitPriceText: "$7.00 per slab (12 slabs/case)",
			MOQ:           "8 Cases",
			Shipping:      "Temperature Ctl",
			ShippingIcon:  "thermostat",
			Description:   "72% cacao dark chocolate slabs sprinkled with hand-harvested sea salt. Requires temperature controlled shipping during summer months.",
			Image:         placeholder("Dark%20Chocolate"),
		},
		{
			ID:            6,
			Brand:         "Global Treats Ltd.",
			Title:         "Assorted Fruit Hard Candies",
			BasePrice:     decimal.RequireFromString("120.00"),
			Type:          domain.TypeBulkBox,
			UnitPriceText: "$0.05 per unit (approx. 2400 units)",
			MOQ:           "2 Boxes",
			Shipping:      "Certified",
			ShippingIcon:  "verified_user",
			Description:   "Classic individually wrapped hard candies in assorted fruit flavors. Perfect for hospitality, banks, and offices.",
			Image:         placeholder("Hard%20Candies"),
		},
	}
	for i := range prods {
		p := &prods[i]
		p.Price = p.BasePrice
		p.Discount = domain.NoDiscount{}
		p.Badges = pricing.ComposeBadges(nil, p.CustomBadges)
	}
	return prods
}
