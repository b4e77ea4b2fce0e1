package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/malshehri/groupbuy-checkout/internal/model"
)

// KV is the opaque storage contract saved payment methods live behind.
// Values are JSON strings; each Set is a single-key atomic overwrite.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// PaymentMethodService persists each user's preferred payment method.
// Saving is decoupled from checkout: a storage failure here never fails
// an already settled charge.
type PaymentMethodService struct {
	kv KV
}

func NewPaymentMethodService(kv KV) *PaymentMethodService {
	return &PaymentMethodService{kv: kv}
}

func savedMethodKey(userID string) string {
	return "saved_payment_method:" + userID
}

// Save overwrites any previously saved method for the user.
func (s *PaymentMethodService) Save(ctx context.Context, userID string, method model.Method, isDefault bool) error {
	saved := model.SavedPaymentMethod{
		Method:    method,
		IsDefault: isDefault,
		SavedAt:   time.Now().UTC(),
	}

	payload, err := json.Marshal(saved)
	if err != nil {
		return fmt.Errorf("marshal saved payment method: %w", err)
	}

	if err := s.kv.Set(ctx, savedMethodKey(userID), string(payload)); err != nil {
		return fmt.Errorf("store payment method for user %s: %w", userID, err)
	}
	return nil
}

// Load returns the user's saved method, or found=false if nothing was
// ever saved.
func (s *PaymentMethodService) Load(ctx context.Context, userID string) (*model.SavedPaymentMethod, bool, error) {
	value, found, err := s.kv.Get(ctx, savedMethodKey(userID))
	if err != nil {
		return nil, false, fmt.Errorf("load payment method for user %s: %w", userID, err)
	}
	if !found {
		return nil, false, nil
	}

	var saved model.SavedPaymentMethod
	if err := json.Unmarshal([]byte(value), &saved); err != nil {
		return nil, false, fmt.Errorf("decode saved payment method for user %s: %w", userID, err)
	}
	return &saved, true, nil
}
