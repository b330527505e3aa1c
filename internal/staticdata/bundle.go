package staticdata

import (
	"context"
	"encoding/json"

	"github.com/huydhb/greenfarm-backend/internal/blog"
	"github.com/huydhb/greenfarm-backend/internal/catalog"
	"github.com/huydhb/greenfarm-backend/pkg/logger"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Sources names the resources loaded at startup.
type Sources struct {
	Products string
	Blogs    string
}

// SizeRecorder receives the number of records kept per resource.
type SizeRecorder interface {
	SetCatalogSize(resource string, n int)
}

// Bundle is the read-only data the storefront serves.
type Bundle struct {
	Catalog *catalog.Catalog
	Posts   *blog.Store
}

// LoadBundle fetches products and posts concurrently. A resource that cannot
// be loaded is logged and served as an empty list; LoadBundle itself only
// fails when ctx is canceled.
func LoadBundle(ctx context.Context, loader *Loader, sources Sources, logg *logger.Logger, sizes SizeRecorder) (*Bundle, error) {
	var (
		products []catalog.Product
		posts    []blog.Post
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		products = loadProducts(gctx, loader, sources.Products, logg)
		return nil
	})
	g.Go(func() error {
		posts = loadPosts(gctx, loader, sources.Blogs, logg)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bundle := &Bundle{
		Catalog: catalog.New(products),
		Posts:   blog.NewStore(posts),
	}
	if sizes != nil {
		sizes.SetCatalogSize("products", bundle.Catalog.Len())
		sizes.SetCatalogSize("posts", bundle.Posts.Len())
	}
	return bundle, nil
}

func loadProducts(ctx context.Context, loader *Loader, source string, logg *logger.Logger) []catalog.Product {
	ctx = logg.WithFields(ctx, map[string]any{"resource": "products", "source": source})

	var raw []json.RawMessage
	if err := loader.Load(ctx, source, &raw); err != nil {
		logg.Error(logg.WithField(ctx, "event", "catalog.load.failed"), "products unavailable, serving empty catalog", err)
		return nil
	}
	records, decodeWarnings := catalog.DecodeRecords(raw)
	products, normWarnings := catalog.FromRecords(records)
	logWarnings(ctx, logg, "catalog.load.warning", multierr.Combine(decodeWarnings, normWarnings))
	logg.Info(logg.WithFields(ctx, map[string]any{"event": "catalog.load.complete", "count": len(products)}), "products loaded")
	return products
}

func loadPosts(ctx context.Context, loader *Loader, source string, logg *logger.Logger) []blog.Post {
	ctx = logg.WithFields(ctx, map[string]any{"resource": "posts", "source": source})

	var raw []json.RawMessage
	if err := loader.Load(ctx, source, &raw); err != nil {
		logg.Error(logg.WithField(ctx, "event", "blog.load.failed"), "posts unavailable, serving empty blog", err)
		return nil
	}
	posts, warnings := blog.DecodePosts(raw)
	logWarnings(ctx, logg, "blog.load.warning", warnings)
	logg.Info(logg.WithFields(ctx, map[string]any{"event": "blog.load.complete", "count": len(posts)}), "posts loaded")
	return posts
}

func logWarnings(ctx context.Context, logg *logger.Logger, event string, warnings error) {
	for _, w := range multierr.Errors(warnings) {
		logg.WarnErr(logg.WithField(ctx, "event", event), "record repaired or skipped", w)
	}
}
