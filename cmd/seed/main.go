package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/logging"
	"storefront/internal/usecase"

	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
)

type seedCategory struct {
	name        string
	description string
}

var categories = []seedCategory{
	{"Perfumes", "Fragrances for all occasions"},
	{"Watches", "Elegant and stylish watches"},
	{"Electronics", "Gadgets and accessories"},
	{"Clothing", "Men's and Women's apparel"},
	{"Footwear", "Shoes for all styles"},
}

var productNames = []string{
	"Perfume Fund", "Watch By", "Smartphone Max", "T-Shirt Classic", "Running Shoes",
	"Leather Jacket", "Bluetooth Headset", "Sunglasses Elite", "Backpack Travel", "Laptop Pro",
}

func main() {
	n := flag.Int("n", 1000, "number of products to create")
	reset := flag.Bool("reset", false, "delete all existing products first")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New("storefront-seed", cfg.GoEnv)

	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatalf("db connect: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Fatalf("db migrate: %v", err)
	}

	productUC := usecase.NewProductUsecase(infraRepo.NewTxManagerGorm(gormDB, cfg.TxMaxRetries), logger)
	ctx := context.Background()

	if *reset {
		deleted, err := productUC.DeleteAllProducts(ctx)
		if err != nil {
			logger.Fatalf("delete products: %v", err)
		}
		logger.Infof("previous products deleted: %d", deleted)
	}

	cats := make([]model.Category, 0, len(categories))
	for _, sc := range categories {
		c, err := productUC.EnsureCategory(ctx, sc.name, sc.description)
		if err != nil {
			logger.Fatalf("ensure category %s: %v", sc.name, err)
		}
		cats = append(cats, c)
	}
	logger.Infof("categories seeded: %d", len(cats))

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 1; i <= *n; i++ {
		if _, err := productUC.AddProduct(ctx, randomProduct(rnd, i, cats)); err != nil {
			logger.Fatalf("add product %d: %v", i, err)
		}
	}
	logger.Infof("%d products created", *n)
}

func randomProduct(rnd *rand.Rand, i int, cats []model.Category) usecase.AddProductInput {
	cat := cats[rnd.Intn(len(cats))]
	name := fmt.Sprintf("%s %d", productNames[rnd.Intn(len(productNames))], i)

	// [500, 5000]
	price := decimal.NewFromFloat(500 + rnd.Float64()*4500).Round(2)

	return usecase.AddProductInput{
		Name:        name,
		Description: fmt.Sprintf("High-quality %s in %s category.", name, cat.Name),
		Image:       fmt.Sprintf("https://picsum.photos/seed/%d/300/300", i),
		Price:       price,
		Stock:       int64(rnd.Intn(100) + 1),
		CategoryID:  &cat.ID,
	}
}
