package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shopfront/storefront-api/internal/models"
)

var productColumns = []string{"id", "name", "slug", "price", "image_url", "description", "category", "in_stock"}

func newMockStore(t *testing.T) (Store, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewStore(db), mock
}

func TestProductRepository_List(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows(productColumns).
		AddRow(1, "Minimalist Tee", "minimalist-tee", "19.99", "https://picsum.photos/seed/tee/400/400", "Soft cotton", "Apparel", true).
		AddRow(2, "Focus Mug", "focus-mug", "12.50", nil, nil, nil, false)
	mock.ExpectQuery(`SELECT \* FROM "products" ORDER BY id`).WillReturnRows(rows)

	products, err := store.Products().List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "minimalist-tee", products[0].Slug)
	assert.True(t, decimal.RequireFromString("19.99").Equal(products[0].Price))
	require.NotNil(t, products[0].Category)
	assert.Equal(t, "Apparel", *products[0].Category)
	assert.True(t, products[0].InStock)

	assert.Nil(t, products[1].ImageURL)
	assert.False(t, products[1].InStock)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetBySlug(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows(productColumns).
		AddRow(1, "Minimalist Tee", "minimalist-tee", "19.99", nil, nil, nil, true)
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE slug = \$1`).WillReturnRows(rows)

	product, err := store.Products().GetBySlug(context.Background(), "minimalist-tee")
	require.NoError(t, err)
	assert.Equal(t, uint(1), product.ID)
	assert.Equal(t, "Minimalist Tee", product.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetBySlug_NotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE slug = \$1`).
		WillReturnRows(sqlmock.NewRows(productColumns))

	product, err := store.Products().GetBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, product)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetBySlug_QueryError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE slug = \$1`).
		WillReturnError(errors.New("db error"))

	product, err := store.Products().GetBySlug(context.Background(), "minimalist-tee")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Nil(t, product)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_FindByIDs(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows(productColumns).
		AddRow(1, "Minimalist Tee", "minimalist-tee", "19.99", nil, nil, nil, true)
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id IN \(\$1,\$2\)`).
		WithArgs(1, 9999).
		WillReturnRows(rows)

	products, err := store.Products().FindByIDs(context.Background(), []uint{1, 9999})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, uint(1), products[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_FindByIDs_Empty(t *testing.T) {
	store, mock := newMockStore(t)

	products, err := store.Products().FindByIDs(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, products)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Create(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	product := models.Product{Name: "Desk Plant", Slug: "desk-plant", Price: decimal.RequireFromString("24.00")}
	require.NoError(t, store.Products().Create(context.Background(), &product))
	assert.Equal(t, uint(3), product.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Create_WritesOutOfStock(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "products" \("name","slug","price","image_url","description","category","in_stock"\)`).
		WithArgs("Notebook", "notebook", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectCommit()

	product := models.Product{Name: "Notebook", Slug: "notebook", Price: decimal.RequireFromString("8.99"), InStock: false}
	require.NoError(t, store.Products().Create(context.Background(), &product))
	assert.Equal(t, uint(4), product.ID)
	assert.False(t, product.InStock)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Update_NotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "products" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := store.Products().Update(context.Background(), &models.Product{ID: 42, Slug: "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID_PreloadsItems(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE "orders"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "total", "created_at"}).
			AddRow(5, "a@b.com", "39.98", time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "order_items" WHERE "order_items"."order_id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "product_name", "quantity", "price"}).
			AddRow(11, 5, 1, "Minimalist Tee", 2, "19.99"))

	order, err := store.Orders().GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", order.Email)
	assert.Equal(t, "39.98", order.Total.String())
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, "Minimalist Tee", order.Items[0].ProductName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Delete(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "orders" WHERE "orders"."id" = \$1`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, store.Orders().Delete(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_WithTransaction_WritesOrderAtomically(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectQuery(`INSERT INTO "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "orders" SET "total"=\$1 WHERE id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.WithTransaction(ctx, func(tx Store) error {
		order := models.Order{Email: "a@b.com"}
		if err := tx.Orders().Create(ctx, &order); err != nil {
			return err
		}
		items := []models.OrderItem{{OrderID: order.ID, ProductID: 1, ProductName: "Minimalist Tee", Quantity: 2, Price: decimal.RequireFromString("19.99")}}
		if err := tx.Orders().CreateItems(ctx, items); err != nil {
			return err
		}
		return tx.Orders().UpdateTotal(ctx, order.ID, decimal.RequireFromString("39.98"))
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_WithTransaction_RollsBackOnItemFailure(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectQuery(`INSERT INTO "order_items"`).
		WillReturnError(errors.New("insert or update on table \"order_items\" violates foreign key constraint"))
	mock.ExpectRollback()

	err := store.WithTransaction(ctx, func(tx Store) error {
		order := models.Order{Email: "a@b.com"}
		if err := tx.Orders().Create(ctx, &order); err != nil {
			return err
		}
		return tx.Orders().CreateItems(ctx, []models.OrderItem{{OrderID: order.ID, ProductID: 1, Quantity: 1}})
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
