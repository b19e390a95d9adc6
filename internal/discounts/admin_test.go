package discounts

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eonite/portal-backend/pkg/db"
	"github.com/eonite/portal-backend/pkg/db/dbtest"
	pkgerrors "github.com/eonite/portal-backend/pkg/errors"
)

func strPtr(s string) *string { return &s }

func newAdmin(t *testing.T) (AdminService, *Repository) {
	t.Helper()
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	svc, err := NewAdminService(repo, db.Wrap(conn))
	require.NoError(t, err)
	return svc, repo
}

func TestAdminCreateScopedOfferAndLookup(t *testing.T) {
	svc, repo := newAdmin(t)
	ctx := context.Background()
	productA := uuid.New()

	created, err := svc.Create(ctx, CreateOfferInput{
		Title:           "Spring sale",
		Code:            strPtr(" spring20 "),
		DiscountPercent: dec("20"),
		IsActive:        true,
		ProductIDs:      []uuid.UUID{productA, productA, uuid.Nil},
	})
	require.NoError(t, err)
	assert.Equal(t, "SPRING20", created.Code)
	assert.Equal(t, []uuid.UUID{productA}, created.ProductIDs)

	found, err := repo.FindActiveByCode(ctx, "SPRING20")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.Create(ctx, CreateOfferInput{Title: "Dup", Code: strPtr("SPRING20"), DiscountPercent: dec("5"), IsActive: true})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeConflict), "got %v", err)
}

func TestAdminToggleHidesOfferFromLookup(t *testing.T) {
	svc, repo := newAdmin(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateOfferInput{Title: "Global", Code: strPtr("ALL5"), DiscountPercent: dec("5"), IsActive: true})
	require.NoError(t, err)

	require.NoError(t, svc.SetActive(ctx, created.ID, false))
	found, err := repo.FindActiveByCode(ctx, "ALL5")
	require.NoError(t, err)
	assert.Nil(t, found)

	require.NoError(t, svc.SetActive(ctx, created.ID, true))
	found, err = repo.FindActiveByCode(ctx, "ALL5")
	require.NoError(t, err)
	assert.NotNil(t, found)

	err = svc.SetActive(ctx, uuid.New(), true)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestAdminCreateInactiveAndDelete(t *testing.T) {
	svc, _ := newAdmin(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateOfferInput{Title: "Draft", DiscountPercent: dec("0"), IsActive: false})
	require.NoError(t, err)
	assert.False(t, created.IsActive)
	assert.Empty(t, created.Code)

	offers, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, offers, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	err = svc.Delete(ctx, created.ID)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestAdminCreateValidation(t *testing.T) {
	svc, _ := newAdmin(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateOfferInput{Title: " ", DiscountPercent: dec("5")})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	_, err = svc.Create(ctx, CreateOfferInput{Title: "Too much", DiscountPercent: dec("120")})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}
