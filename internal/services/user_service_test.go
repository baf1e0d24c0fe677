package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserUpdate_PartialEdit(t *testing.T) {
	db := newServiceDB(t)
	svc := NewUserService(db)
	id := seedUser(t, db, "ana@example.com")
	ctx := context.Background()

	name := "Ana"
	wa := "+55 11 99999-0000"
	done := true
	u, err := svc.Update(ctx, id, ProfileUpdate{
		DisplayName:         &name,
		Whatsapp:            &wa,
		OnboardingCompleted: &done,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.DisplayName)
	assert.Equal(t, wa, u.Whatsapp)
	assert.True(t, u.OnboardingCompleted)

	// Untouched fields survive a later partial edit.
	region := "Recife - PE"
	u, err = svc.Update(ctx, id, ProfileUpdate{Region: &region})
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.DisplayName)
	assert.Equal(t, region, u.Region)

	empty := "  "
	_, err = svc.Update(ctx, id, ProfileUpdate{DisplayName: &empty})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "displayName", ve.Field)
}

func TestUserUpdate_NoFieldsIsGet(t *testing.T) {
	db := newServiceDB(t)
	svc := NewUserService(db)
	id := seedUser(t, db, "ana@example.com")

	u, err := svc.Update(context.Background(), id, ProfileUpdate{})
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
}

func TestUserGet_Missing(t *testing.T) {
	db := newServiceDB(t)
	svc := NewUserService(db)

	_, err := svc.Get(context.Background(), "00000000-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, ErrUserNotFound)
}
