package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/qrmenu/app/repositories"
)

func TestQRCodeService(t *testing.T) {
	s := NewQRCodeService(repositories.NewMemoryQRCodeRepository())
	ctx := context.Background()

	_, err := s.Find(ctx, "m1")
	assert.ErrorIs(t, err, ErrNotFound)

	saved, err := s.Save(ctx, QRCodeInput{MenuID: "m1", QRCodeURL: "https://api.qrserver.com/v1/create-qr-code/?data=x"})
	require.NoError(t, err)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := s.Find(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, saved.QRCodeURL, got.QRCodeURL)

	_, err = s.Save(ctx, QRCodeInput{MenuID: "", QRCodeURL: "not a url"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "menuId")
	assert.Contains(t, ve.Fields, "qrCodeUrl")
}
