package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eonite/portal-backend/pkg/db/dbtest"
	"github.com/eonite/portal-backend/pkg/db/models"
)

func TestClientProductFindOrCreateReusesIdentity(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewClientProductRepository(db)
	ctx := context.Background()

	clientID := uuid.New()
	productID := uuid.New()
	variantID := uuid.New()

	first, err := repo.FindOrCreate(ctx, clientID, productID, &variantID, "Kraft bag (M)")
	require.NoError(t, err)
	second, err := repo.FindOrCreate(ctx, clientID, productID, &variantID, "renamed")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Kraft bag (M)", second.DisplayName)

	noVariant, err := repo.FindOrCreate(ctx, clientID, productID, nil, "Kraft bag (24x32)")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, noVariant.ID)

	otherClient, err := repo.FindOrCreate(ctx, uuid.New(), productID, &variantID, "Kraft bag (M)")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, otherClient.ID)

	var count int64
	require.NoError(t, db.Model(&models.ClientProduct{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestClientProductIdentityIndexRejectsDuplicates(t *testing.T) {
	db := dbtest.Open(t)
	clientID := uuid.New()
	productID := uuid.New()

	row := models.ClientProduct{ID: uuid.New(), ClientID: clientID, ProductID: productID, DisplayName: "a", IsActive: true}
	require.NoError(t, db.Create(&row).Error)
	dup := models.ClientProduct{ID: uuid.New(), ClientID: clientID, ProductID: productID, DisplayName: "b", IsActive: true}
	require.Error(t, db.Create(&dup).Error)

	found, err := NewClientProductRepository(db).Find(context.Background(), clientID, productID, nil)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, row.ID, found.ID)
}
