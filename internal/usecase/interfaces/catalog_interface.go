package interfaces

import (
	"context"

	"isa_platform/internal/domain/entities"
)

// ISellerDirectory resolves a seller from a public storefront identifier.
//
// Resolution order is matricula first, then the vitrine slug; both are tried
// by the implementation so callers hold a single lookup. Zero value + nil
// error means no seller matched.

type ISellerDirectory interface {
	ResolveByPublicID(ctx context.Context, publicID string) (entities.Seller, error)
}

// IProductCatalog exposes the delivery metadata the dispatcher needs.
// Zero value + nil error means the product is unknown.

type IProductCatalog interface {
	GetDeliveryInfo(ctx context.Context, productID string) (entities.ProductDeliveryInfo, error)
}
