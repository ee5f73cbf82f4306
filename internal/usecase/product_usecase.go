package usecase

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	tx  repo.TransactionManager
	log Logger
}

// DI
func NewProductUsecase(tx repo.TransactionManager, log Logger) *ProductUsecase {
	return &ProductUsecase{tx: tx, log: log}
}

type IndexOutput struct {
	Products   []model.Product  `json:"products"`
	Categories []model.Category `json:"categories"`
}

type CategoryPageOutput struct {
	Category model.Category  `json:"category"`
	Products []model.Product `json:"products"`
}

// POST /product/add の入力
type AddProductInput struct {
	Name        string
	Description string
	Image       string
	Price       decimal.Decimal
	Stock       int64
	CategoryID  *int64
}

// トップページ（商品とカテゴリ）
func (u *ProductUsecase) Index(ctx context.Context) (IndexOutput, error) {
	var out IndexOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		products, err := r.Products().List(ctx)
		if err != nil {
			return storageErr("list products", err)
		}
		categories, err := r.Categories().List(ctx)
		if err != nil {
			return storageErr("list categories", err)
		}
		out = IndexOutput{Products: products, Categories: categories}
		return nil
	})
	if err != nil {
		return IndexOutput{}, err
	}
	return out, nil
}

func (u *ProductUsecase) Products(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		products, err := r.Products().List(ctx)
		if err != nil {
			return storageErr("list products", err)
		}
		out = products
		return nil
	})
	if err != nil {
		return []model.Product{}, err
	}
	return out, nil
}

func (u *ProductUsecase) Categories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		categories, err := r.Categories().List(ctx)
		if err != nil {
			return storageErr("list categories", err)
		}
		out = categories
		return nil
	})
	if err != nil {
		return []model.Category{}, err
	}
	return out, nil
}

func (u *ProductUsecase) CategoryPage(ctx context.Context, categoryID int64) (CategoryPageOutput, error) {
	if categoryID <= 0 {
		return CategoryPageOutput{}, ErrNotFound
	}

	var out CategoryPageOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Categories().FindByID(ctx, categoryID)
		if err != nil {
			return notFoundOr("find category", err)
		}
		products, err := r.Products().ListByCategoryID(ctx, categoryID)
		if err != nil {
			return storageErr("list products by category", err)
		}
		out = CategoryPageOutput{Category: c, Products: products}
		return nil
	})
	if err != nil {
		return CategoryPageOutput{}, err
	}
	return out, nil
}

// 価格は小数2桁に丸める
func (u *ProductUsecase) AddProduct(ctx context.Context, in AddProductInput) (model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Product{}, validationErr("name is required")
	}
	price := in.Price.Round(2)
	if !price.IsPositive() {
		return model.Product{}, validationErr("price must be positive")
	}
	if in.Stock < 0 {
		return model.Product{}, validationErr("stock must not be negative")
	}
	if in.CategoryID != nil && *in.CategoryID <= 0 {
		return model.Product{}, validationErr("invalid category")
	}

	var created model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if in.CategoryID != nil {
			if _, err := r.Categories().FindByID(ctx, *in.CategoryID); err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					return validationErr("category does not exist")
				}
				return storageErr("find category", err)
			}
		}

		p, err := r.Products().Create(ctx, model.Product{
			Name:        name,
			Description: strings.TrimSpace(in.Description),
			Image:       strings.TrimSpace(in.Image),
			Price:       price,
			Stock:       in.Stock,
			CategoryID:  in.CategoryID,
		})
		if err != nil {
			return storageErr("create product", err)
		}
		created = p
		return nil
	})
	if err != nil {
		return model.Product{}, err
	}
	return created, nil
}

// 論理削除。カートとウィッシュリストの明細も同じTxで消す
func (u *ProductUsecase) DeleteProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return ErrNotFound
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Products().SoftDelete(ctx, productID); err != nil {
			return notFoundOr("delete product", err)
		}
		if err := r.Carts().DeleteByProductID(ctx, productID); err != nil {
			return storageErr("delete cart lines", err)
		}
		if err := r.Wishlists().DeleteByProductID(ctx, productID); err != nil {
			return storageErr("delete wishlist lines", err)
		}
		return nil
	})
}

// 無ければslug付きで作る
func (u *ProductUsecase) EnsureCategory(ctx context.Context, name string, description string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, validationErr("category name is required")
	}

	var out model.Category
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Categories().FindByName(ctx, name)
		if err == nil {
			out = c
			return nil
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return storageErr("find category", err)
		}

		c, err = r.Categories().Create(ctx, model.Category{
			Name:        name,
			Slug:        slug.Make(name),
			Description: description,
		})
		if errors.Is(err, repo.ErrDuplicate) {
			return ErrConflict
		}
		if err != nil {
			return storageErr("create category", err)
		}
		out = c
		return nil
	})
	if err != nil {
		return model.Category{}, err
	}
	return out, nil
}

// seedの-reset用
func (u *ProductUsecase) DeleteAllProducts(ctx context.Context) (int64, error) {
	var n int64
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Carts().DeleteAll(ctx); err != nil {
			return storageErr("delete cart lines", err)
		}
		if err := r.Wishlists().DeleteAll(ctx); err != nil {
			return storageErr("delete wishlist lines", err)
		}
		deleted, err := r.Products().SoftDeleteAll(ctx)
		if err != nil {
			return storageErr("delete products", err)
		}
		n = deleted
		return nil
	})
	if err != nil {
		return 0, err
	}
	u.log.Infof("deleted %d products", n)
	return n, nil
}
