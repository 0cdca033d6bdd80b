package client

import (
	"context"
	"errors"
	"strings"

	promotiondomain "github.com/smallbiznis/backoffice/internal/promotion/domain"
	"go.uber.org/zap"
)

// PromotionForm holds the state of the promotion edit screen for one
// promotion. It is not safe for concurrent use.
type PromotionForm struct {
	ID      string
	Values  promotiondomain.Input
	Image   *File
	Errors  promotiondomain.ValidationErrors
	Message string
	Loading bool

	client *Client
	nav    Navigator
	notify Notifier
	log    *zap.Logger
}

func NewPromotionForm(c *Client, id string, nav Navigator, notify Notifier) *PromotionForm {
	if nav == nil {
		nav = nopNavigator{}
	}
	if notify == nil {
		notify = nopNotifier{}
	}
	return &PromotionForm{
		ID:     strings.TrimSpace(id),
		client: c,
		nav:    nav,
		notify: notify,
		log:    c.log.Named("promotion_form"),
	}
}

// Load fills the form from the stored promotion.
func (f *PromotionForm) Load(ctx context.Context) error {
	promo, err := f.client.GetPromotion(ctx, f.ID)
	if err != nil {
		f.log.Warn("fetch promotion failed", zap.String("promotion_id", f.ID), zap.Error(err))
		f.notify.Error("Failed to fetch promotion data.")
		return err
	}

	f.Values = promotiondomain.Input{
		PromotionCode:      promo.PromotionCode,
		Description:        promo.Description,
		StartDate:          promo.StartDate,
		EndDate:            promo.EndDate,
		DiscountPercentage: promo.DiscountPercentage,
		ImageURL:           promo.ImageURL,
	}
	return nil
}

// Submit validates locally, uploads the optional image under "file", and
// saves the promotion. Loading is cleared on every return and the screen
// navigates back only after the server confirms the update.
func (f *PromotionForm) Submit(ctx context.Context) error {
	f.Loading = true
	defer func() { f.Loading = false }()

	f.Message = ""
	f.Errors = promotiondomain.Validate(f.Values)
	if f.Errors != nil {
		return f.Errors
	}

	if f.Image != nil {
		res, err := f.client.Upload(ctx, "file", *f.Image)
		if err != nil {
			f.log.Warn("image upload failed", zap.Error(err))
			f.Message = "File upload failed"
			f.notify.Error("Error uploading image.")
			return err
		}
		f.Values.ImageURL = strings.TrimSpace(res.SecureURL)
		f.notify.Success("Image uploaded.")
	}

	if _, err := f.client.UpdatePromotion(ctx, f.ID, f.Values); err != nil {
		f.log.Warn("update promotion failed", zap.String("promotion_id", f.ID), zap.Error(err))

		var apiErr *APIError
		if errors.As(err, &apiErr) {
			if len(apiErr.Fields) > 0 {
				f.Errors = promotiondomain.ValidationErrors(apiErr.Fields)
			}
			f.Message = "Error: " + apiErr.Error()
		} else {
			f.Message = "Promotion update failed"
		}
		f.notify.Error(f.Message)
		return err
	}

	f.Message = "Promotion updated successfully"
	f.notify.Success("Promotion updated successfully.")
	f.nav.Back()
	return nil
}

// Delete removes the promotion and navigates back on success.
func (f *PromotionForm) Delete(ctx context.Context) error {
	f.Loading = true
	defer func() { f.Loading = false }()

	if err := f.client.DeletePromotion(ctx, f.ID); err != nil {
		f.log.Warn("delete promotion failed", zap.String("promotion_id", f.ID), zap.Error(err))
		f.Message = "Promotion delete failed"
		f.notify.Error("Failed to delete promotion.")
		return err
	}

	f.Message = "Promotion deleted successfully"
	f.notify.Success("Promotion deleted successfully.")
	f.nav.Back()
	return nil
}
