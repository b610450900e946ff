package catalog

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/safar/ar-storefront/internal/database"
	"github.com/safar/ar-storefront/internal/models"
	"github.com/safar/ar-storefront/internal/storage"
	"github.com/safar/ar-storefront/internal/store"
	"github.com/safar/ar-storefront/internal/testutil"
	"github.com/shopspring/decimal"
)

type fakePresigner struct{}

func (fakePresigner) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://signed.test/" + key, nil
}

type refusingPresigner struct{}

func (refusingPresigner) PresignGet(context.Context, string, time.Duration) (string, error) {
	return "", errors.New("credentials expired")
}

type fakeUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (u *fakeUploader) Upload(_ context.Context, key string, r io.Reader, _ int64, contentType string) error {
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.objects == nil {
		u.objects = map[string][]byte{}
		u.types = map[string]string{}
	}
	u.objects[key] = body
	u.types[key] = contentType
	return nil
}

func newTestService(t *testing.T) (*Service, *sql.DB, *fakeUploader) {
	db := testutil.NewPostgres(t)
	uploader := &fakeUploader{}
	signer := storage.NewSigner(fakePresigner{}, storage.SignerOptions{URLTTL: time.Hour, Concurrency: 4})
	return NewService(Dependencies{DB: db, Signer: signer, Uploader: uploader}), db, uploader
}

func createProduct(t *testing.T, s *Service, shopID int64, name string, featured bool) *models.Product {
	t.Helper()
	p, err := s.CreateProduct(context.Background(), models.CreateProductData{
		ShopID:   shopID,
		Name:     name,
		Price:    decimal.NewFromInt(250),
		Featured: featured,
	})
	if err != nil {
		t.Fatalf("Create product %s: %v", name, err)
	}
	return p
}

func TestGetCompanyBySubdomain(t *testing.T) {
	c := qt.New(t)
	s, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := s.GetCompanyBySubdomain(ctx, "nobody")
	c.Assert(err, qt.ErrorIs, database.ErrCompanyNotFound)

	created, err := s.CreateCompany(ctx, models.CreateCompanyData{ShopName: "Oak & Co", Subdomain: "Oak"})
	c.Assert(err, qt.IsNil)
	c.Assert(created.Subdomain, qt.Equals, "oak")
	c.Assert(created.Status, qt.Equals, models.CompanyStatusActive)
	c.Assert(created.Plan, qt.Equals, models.PlanTrial)

	first, err := s.GetCompanyBySubdomain(ctx, "oak")
	c.Assert(err, qt.IsNil)
	second, err := s.GetCompanyBySubdomain(ctx, "oak")
	c.Assert(err, qt.IsNil)
	c.Assert(second, qt.DeepEquals, first)

	_, err = s.CreateCompany(ctx, models.CreateCompanyData{ShopName: "Other", Subdomain: "oak"})
	c.Assert(err, qt.ErrorIs, database.ErrSubdomainTaken)
}

func TestGetProductsBySubdomainUnknownIsEmpty(t *testing.T) {
	c := qt.New(t)
	s, _, _ := newTestService(t)

	products, err := s.GetProductsBySubdomain(context.Background(), "ghost")
	c.Assert(err, qt.IsNil)
	c.Assert(products, qt.HasLen, 0)
	c.Assert(products, qt.IsNotNil)
}

func TestDeleteProductIsSoft(t *testing.T) {
	c := qt.New(t)
	s, db, _ := newTestService(t)
	ctx := context.Background()

	shop := testutil.InsertCompany(t, db, "soft")
	product := createProduct(t, s, shop, "Armchair", false)

	c.Assert(s.DeleteProduct(ctx, product.ID), qt.IsNil)

	_, err := s.GetProduct(ctx, product.ID)
	c.Assert(err, qt.ErrorIs, database.ErrProductNotFound)

	listed, err := s.GetProducts(ctx, &shop)
	c.Assert(err, qt.IsNil)
	c.Assert(listed, qt.HasLen, 0)

	record, err := store.GetProductRecord(ctx, db, product.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(record.Status, qt.Equals, models.ProductStatusInactive)

	events, err := s.ListProductEvents(ctx, product.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(events, qt.HasLen, 2)
	c.Assert(events[0].Event, qt.Equals, models.ProductEventCreated)
	c.Assert(events[1].Event, qt.Equals, models.ProductEventDeleted)

	c.Assert(s.DeleteProduct(ctx, product.ID), qt.ErrorIs, database.ErrProductNotFound)
}

func TestUpdateProductChangesOnlyProvidedFields(t *testing.T) {
	c := qt.New(t)
	s, db, _ := newTestService(t)
	ctx := context.Background()

	shop := testutil.InsertCompany(t, db, "patch")
	created, err := s.CreateProduct(ctx, models.CreateProductData{
		ShopID:        shop,
		Name:          "Desk",
		Description:   "Oak desk",
		Price:         decimal.NewFromInt(300),
		DiscountPrice: decPtr("90"),
		Category:      "Office",
		Material:      "Oak",
		ARPlacement:   models.PlacementFloor,
	})
	c.Assert(err, qt.IsNil)

	before, err := store.GetProductRecord(ctx, db, created.ID)
	c.Assert(err, qt.IsNil)

	time.Sleep(10 * time.Millisecond)
	updated, err := s.UpdateProduct(ctx, created.ID, models.ProductPatch{Price: decPtr("100")})
	c.Assert(err, qt.IsNil)
	c.Assert(updated.Price.Equal(decimal.NewFromInt(100)), qt.IsTrue)
	c.Assert(updated.DiscountPercentage, qt.Equals, int64(10))

	after, err := store.GetProductRecord(ctx, db, created.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(after.UpdatedAt.After(before.UpdatedAt), qt.IsTrue)

	// everything except price and updated_at is untouched
	c.Assert(after.Name, qt.Equals, before.Name)
	c.Assert(after.Description, qt.Equals, before.Description)
	c.Assert(after.Category, qt.Equals, before.Category)
	c.Assert(after.Material, qt.Equals, before.Material)
	c.Assert(after.DiscountPrice.Decimal.Equal(before.DiscountPrice.Decimal), qt.IsTrue)
	c.Assert(after.ARScale.Equal(before.ARScale), qt.IsTrue)
	c.Assert(after.CreatedAt.Equal(before.CreatedAt), qt.IsTrue)

	// discount above the stored price trips the CHECK constraint
	_, err = s.UpdateProduct(ctx, created.ID, models.ProductPatch{DiscountPrice: decPtr("150")})
	c.Assert(err, qt.ErrorIs, database.ErrInvalidDiscount)

	_, err = s.UpdateProduct(ctx, 999999, models.ProductPatch{Price: decPtr("1")})
	c.Assert(err, qt.ErrorIs, database.ErrProductNotFound)
}

func TestProductOrdering(t *testing.T) {
	c := qt.New(t)
	s, db, _ := newTestService(t)
	ctx := context.Background()

	shop := testutil.InsertCompany(t, db, "order")
	older := createProduct(t, s, shop, "Older", false)
	featured := createProduct(t, s, shop, "Featured", true)
	newer := createProduct(t, s, shop, "Newer", false)

	products, err := s.GetProductsBySubdomain(ctx, "order")
	c.Assert(err, qt.IsNil)
	c.Assert(products, qt.HasLen, 3)
	c.Assert([]int64{products[0].ID, products[1].ID, products[2].ID}, qt.DeepEquals,
		[]int64{featured.ID, newer.ID, older.ID})
}

func TestCompanyProductScoping(t *testing.T) {
	c := qt.New(t)
	s, db, _ := newTestService(t)
	ctx := context.Background()

	mine := testutil.InsertCompany(t, db, "mine")
	testutil.InsertCompany(t, db, "theirs")
	product := createProduct(t, s, mine, "Stool", false)

	got, err := s.GetCompanyProduct(ctx, "mine", product.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Company.Subdomain, qt.Equals, "mine")

	_, err = s.GetCompanyProduct(ctx, "theirs", product.ID)
	c.Assert(err, qt.ErrorIs, database.ErrProductNotFound)
}

func TestSeedIsIdempotent(t *testing.T) {
	c := qt.New(t)
	_, db, _ := newTestService(t)
	ctx := context.Background()

	seeded, err := database.Seed(ctx, db)
	c.Assert(err, qt.IsNil)
	c.Assert(seeded, qt.IsTrue)

	seeded, err = database.Seed(ctx, db)
	c.Assert(err, qt.IsNil)
	c.Assert(seeded, qt.IsFalse)

	var companies int
	c.Assert(db.QueryRow(`SELECT COUNT(*) FROM companies`).Scan(&companies), qt.IsNil)
	c.Assert(companies, qt.Equals, len(database.DemoSubdomains()))
}

func TestConcurrentInitializers(t *testing.T) {
	c := qt.New(t)
	_, db, _ := newTestService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// separate initializers behave like separate processes
			errs <- database.NewInitializer(db, nil).Ensure(ctx)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		c.Assert(err, qt.IsNil)
	}

	var companies int
	c.Assert(db.QueryRow(`SELECT COUNT(*) FROM companies`).Scan(&companies), qt.IsNil)
	c.Assert(companies, qt.Equals, len(database.DemoSubdomains()))
}

func TestARRequestLifecycle(t *testing.T) {
	c := qt.New(t)
	s, db, _ := newTestService(t)
	ctx := context.Background()

	shop := testutil.InsertCompany(t, db, "arshop")
	other := testutil.InsertCompany(t, db, "elsewhere")
	product := createProduct(t, s, shop, "Bookshelf", false)

	_, err := s.CreateARRequest(ctx, product.ID, other)
	c.Assert(err, qt.ErrorIs, database.ErrProductNotFound)

	req, err := s.CreateARRequest(ctx, product.ID, shop)
	c.Assert(err, qt.IsNil)
	c.Assert(req.Status, qt.Equals, models.ARRequestPending)

	approved, err := s.UpdateARRequest(ctx, req.ID, "Approved")
	c.Assert(err, qt.IsNil)
	c.Assert(approved.Status, qt.Equals, models.ARRequestApproved)
	c.Assert(approved.ApprovedDate, qt.IsNotNil)
	c.Assert(approved.RejectedDate, qt.IsNil)

	_, err = s.UpdateARRequest(ctx, req.ID, "Pending")
	c.Assert(err, qt.ErrorIs, database.ErrInvalidTransition)

	_, err = s.UpdateARRequest(ctx, 424242, "Approved")
	c.Assert(err, qt.ErrorIs, database.ErrARRequestNotFound)

	page, err := s.GetARRequests(ctx, &shop, 0, 0)
	c.Assert(err, qt.IsNil)
	c.Assert(page.Total, qt.Equals, int64(1))
	c.Assert(page.Page, qt.Equals, 1)
	c.Assert(page.PageSize, qt.Equals, store.DefaultPageSize)
}

func TestConcurrentReviewersOnlyOneWins(t *testing.T) {
	c := qt.New(t)
	s, db, _ := newTestService(t)
	ctx := context.Background()

	shop := testutil.InsertCompany(t, db, "race")
	product := createProduct(t, s, shop, "Cabinet", false)
	req, err := s.CreateARRequest(ctx, product.ID, shop)
	c.Assert(err, qt.IsNil)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for _, status := range []string{"Approved", "Rejected"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.UpdateARRequest(ctx, req.ID, status)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, conflicts int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, database.ErrInvalidTransition) || database.IsRetryable(err):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	c.Assert(ok, qt.Equals, 1)
	c.Assert(conflicts, qt.Equals, 1)
}

func TestDashboardStats(t *testing.T) {
	c := qt.New(t)
	s, db, _ := newTestService(t)
	ctx := context.Background()

	shop := testutil.InsertCompany(t, db, "stats")
	createProduct(t, s, shop, "A", true)
	b := createProduct(t, s, shop, "B", false)
	c.Assert(s.DeleteProduct(ctx, b.ID), qt.IsNil)
	d := createProduct(t, s, shop, "D", false)

	var requests []*models.ARRequest
	for i := 0; i < 3; i++ {
		req, err := s.CreateARRequest(ctx, d.ID, shop)
		c.Assert(err, qt.IsNil)
		requests = append(requests, req)
	}
	_, err := s.UpdateARRequest(ctx, requests[0].ID, string(models.ARRequestApproved))
	c.Assert(err, qt.IsNil)
	_, err = s.UpdateARRequest(ctx, requests[1].ID, string(models.ARRequestRejected))
	c.Assert(err, qt.IsNil)

	stats, err := s.GetDashboardStats(ctx, &shop)
	c.Assert(err, qt.IsNil)
	c.Assert(stats.TotalProducts, qt.Equals, int64(3))
	c.Assert(stats.ActiveProducts, qt.Equals, int64(2))
	c.Assert(stats.FeaturedProducts, qt.Equals, int64(1))
	c.Assert(stats.PendingARRequests, qt.Equals, int64(1))
	c.Assert(stats.ApprovedARRequests, qt.Equals, int64(1))
	c.Assert(stats.RejectedARRequests, qt.Equals, int64(1))
	c.Assert(stats.TotalCompanies, qt.Equals, int64(1))
}

func TestUploadAsset(t *testing.T) {
	c := qt.New(t)
	s, db, uploader := newTestService(t)
	ctx := context.Background()

	shop := testutil.InsertCompany(t, db, "uploads")
	product := createProduct(t, s, shop, "Lamp", false)

	img, err := s.UploadAsset(ctx, Upload{
		ProductID: product.ID,
		Kind:      AssetImage,
		Index:     2,
		Filename:  "lamp.JPG",
		Size:      3,
		Body:      bytes.NewReader([]byte("jpg")),
	})
	c.Assert(err, qt.IsNil)
	wantKey := fmt.Sprintf("products/%d/images/product-%d-image-2.jpg", product.ID, product.ID)
	c.Assert(img.Key, qt.Equals, wantKey)
	c.Assert(img.URL, qt.IsNotNil)
	c.Assert(*img.URL, qt.Equals, "https://signed.test/"+wantKey)
	c.Assert(uploader.types[wantKey], qt.Equals, "image/jpeg")

	model, err := s.UploadAsset(ctx, Upload{
		ProductID: product.ID,
		Kind:      AssetARModel,
		Filename:  "lamp.glb",
		Size:      4,
		Body:      bytes.NewReader([]byte("glTF")),
	})
	c.Assert(err, qt.IsNil)

	got, err := s.GetProduct(ctx, product.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Image1, qt.IsNil)
	c.Assert(*got.Image2, qt.Equals, *img.URL)
	c.Assert(got.Images, qt.DeepEquals, []string{*img.URL})
	c.Assert(got.HasAR, qt.IsTrue)
	c.Assert(*got.GLBFile, qt.Equals, *model.URL)

	_, err = s.UploadAsset(ctx, Upload{ProductID: 999999, Kind: AssetImage, Filename: "x.png", Body: bytes.NewReader(nil)})
	c.Assert(err, qt.ErrorIs, database.ErrProductNotFound)
}

func TestUploadAssetKeepsObjectWhenSigningFails(t *testing.T) {
	c := qt.New(t)
	db := testutil.NewPostgres(t)
	ctx := context.Background()

	uploader := &fakeUploader{}
	s := NewService(Dependencies{
		DB:       db,
		Signer:   storage.NewSigner(refusingPresigner{}, storage.SignerOptions{URLTTL: time.Hour}),
		Uploader: uploader,
	})

	shop := testutil.InsertCompany(t, db, "unsigned")
	product := createProduct(t, s, shop, "Stool", false)

	result, err := s.UploadAsset(ctx, Upload{
		ProductID: product.ID,
		Kind:      AssetARModel,
		Filename:  "stool.usdz",
		Size:      4,
		Body:      bytes.NewReader([]byte("usdz")),
	})
	c.Assert(err, qt.IsNil)
	c.Assert(result.URL, qt.IsNil)
	c.Assert(result.Key, qt.Equals, fmt.Sprintf("products/%d/ar/product-%d-model.usdz", product.ID, product.ID))
	c.Assert(uploader.objects[result.Key], qt.DeepEquals, []byte("usdz"))

	record, err := store.GetProductRecord(ctx, db, product.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(record.USDZFile, qt.IsNotNil)
	c.Assert(*record.USDZFile, qt.Equals, result.Key)
}
