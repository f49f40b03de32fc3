package services

import (
	"context"
	"errors"
	"time"

	"github.com/shashiranjanraj/qrmenu/app/models"
	"github.com/shashiranjanraj/qrmenu/app/repositories"
	"github.com/shashiranjanraj/qrmenu/pkg/logger"
	"github.com/shashiranjanraj/qrmenu/pkg/validate"
)

// QRCodeInput is the body the menu API posts to the registry.
type QRCodeInput struct {
	MenuID    string `json:"menuId" validate:"required"`
	QRCodeURL string `json:"qrCodeUrl" validate:"required,url"`
}

// QRCodeService is the receiving side of the QR registry.
type QRCodeService struct {
	repo repositories.QRCodeRepository
	now  func() time.Time
}

func NewQRCodeService(repo repositories.QRCodeRepository) *QRCodeService {
	return &QRCodeService{repo: repo, now: time.Now}
}

func (s *QRCodeService) Save(ctx context.Context, in QRCodeInput) (models.QRCode, error) {
	if errs := validate.Struct(in); len(errs) > 0 {
		return models.QRCode{}, invalid(errs)
	}

	qr := models.QRCode{MenuID: in.MenuID, QRCodeURL: in.QRCodeURL, CreatedAt: s.now().UTC()}
	if err := s.repo.Save(ctx, qr); err != nil {
		return models.QRCode{}, persistErr("save qr code", err)
	}

	logger.WithCtx(ctx).Info("qr code saved", "menu_id", qr.MenuID)
	return qr, nil
}

func (s *QRCodeService) Find(ctx context.Context, menuID string) (models.QRCode, error) {
	qr, err := s.repo.FindByMenuID(ctx, menuID)
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return models.QRCode{}, ErrNotFound
	}
	return qr, err
}
