package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"cardvault/internal/audit"
	"cardvault/internal/auth"
	"cardvault/internal/crypto"
	"cardvault/internal/errors"
	"cardvault/internal/model"
	"cardvault/internal/repository"
)

// CreateMerchantInput is the data accepted by Create. LinkUserID, when set,
// binds an existing merchant-role user to the new merchant in the same
// transaction.
type CreateMerchantInput struct {
	Name       string
	Email      string
	LinkUserID *uint
}

// MerchantDetails is the merchant list projection.
type MerchantDetails struct {
	MerchantID   uint   `json:"merchant_id"`
	BusinessName string `json:"business_name"`
	ContactEmail string `json:"contact_email"`
}

// MerchantCustomer is a customer of a merchant with their card summaries.
// Card CVVs are never part of this projection.
type MerchantCustomer struct {
	CustomerDetails
	Cards []CardDetails `json:"cards"`
}

// MerchantService handles merchant records.
type MerchantService interface {
	Create(ctx context.Context, actor *auth.Principal, ip string, in CreateMerchantInput) (*model.Merchant, error)
	List(ctx context.Context) ([]MerchantDetails, error)
	Customers(ctx context.Context, actor *auth.Principal) ([]MerchantCustomer, error)
}

type merchantService struct {
	store  *repository.Store
	tx     repository.TxManager
	cipher *crypto.Cipher
}

// NewMerchantService creates a new merchant service.
func NewMerchantService(store *repository.Store, tx repository.TxManager, cipher *crypto.Cipher) MerchantService {
	return &merchantService{store: store, tx: tx, cipher: cipher}
}

// Create adds a merchant, optionally linking a merchant-role user, and
// audits the creation in the same transaction.
func (s *merchantService) Create(ctx context.Context, actor *auth.Principal, ip string, in CreateMerchantInput) (*model.Merchant, error) {
	if in.Name == "" || in.Email == "" {
		return nil, errors.ErrMissingFields
	}
	if in.LinkUserID != nil {
		if _, err := s.store.Users.FindByID(ctx, *in.LinkUserID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.ErrUserNotFound
			}
			return nil, fmt.Errorf("find user: %w", err)
		}
	}

	merchant := &model.Merchant{
		MerchantName: in.Name,
		ContactEmail: in.Email,
		Status:       model.StatusActive,
	}

	err := s.tx.WithTx(ctx, func(ctx context.Context, st *repository.Store) error {
		if err := st.Merchants.Create(ctx, merchant); err != nil {
			return fmt.Errorf("create merchant: %w", err)
		}
		if in.LinkUserID != nil {
			if err := st.Users.LinkMerchant(ctx, *in.LinkUserID, merchant.ID); err != nil {
				return fmt.Errorf("link merchant user: %w", err)
			}
		}
		return audit.NewRecorder(st.AuditLogs).Record(ctx, audit.Entry{
			ActorID:  actor.UserID,
			Action:   audit.ActionCreateMerchant,
			Table:    "merchants",
			RecordID: merchant.ID,
			NewValue: merchant.MerchantName,
			IP:       ip,
		})
	})
	if err != nil {
		return nil, err
	}
	return merchant, nil
}

// List returns all active merchants.
func (s *merchantService) List(ctx context.Context) ([]MerchantDetails, error) {
	merchants, err := s.store.Merchants.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list merchants: %w", err)
	}
	out := make([]MerchantDetails, 0, len(merchants))
	for _, m := range merchants {
		out = append(out, MerchantDetails{
			MerchantID:   m.ID,
			BusinessName: m.MerchantName,
			ContactEmail: m.ContactEmail,
		})
	}
	return out, nil
}

// Customers returns the acting merchant's active customers and their card
// summaries. The actor must be linked to a merchant record.
func (s *merchantService) Customers(ctx context.Context, actor *auth.Principal) ([]MerchantCustomer, error) {
	if actor == nil {
		return nil, errors.ErrLoginRequired
	}
	user, err := s.store.Users.FindByID(ctx, actor.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrForbidden
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user.MerchantID == nil {
		return nil, errors.ErrForbidden
	}

	customers, err := s.store.Customers.ListActiveByMerchant(ctx, *user.MerchantID)
	if err != nil {
		return nil, fmt.Errorf("list merchant customers: %w", err)
	}

	out := make([]MerchantCustomer, 0, len(customers))
	for _, c := range customers {
		email, err := s.cipher.Decrypt(c.EmailEnc)
		if err != nil {
			return nil, fmt.Errorf("decrypt customer %d email: %w", c.ID, err)
		}
		phone, err := s.cipher.Decrypt(c.PhoneEnc)
		if err != nil {
			return nil, fmt.Errorf("decrypt customer %d phone: %w", c.ID, err)
		}
		mc := MerchantCustomer{
			CustomerDetails: CustomerDetails{
				CustomerID: c.ID,
				MerchantID: c.MerchantID,
				FirstName:  c.FirstName,
				LastName:   c.LastName,
				Email:      crypto.SafeString(email),
				Phone:      crypto.SafeString(phone),
			},
			Cards: make([]CardDetails, 0, len(c.Cards)),
		}
		for _, card := range c.Cards {
			number, err := s.cipher.Decrypt(card.CardNumberEnc)
			if err != nil {
				return nil, fmt.Errorf("decrypt card %d number: %w", card.ID, err)
			}
			expiry, err := s.cipher.Decrypt(card.ExpiryDateEnc)
			if err != nil {
				return nil, fmt.Errorf("decrypt card %d expiry: %w", card.ID, err)
			}
			mc.Cards = append(mc.Cards, CardDetails{
				CardID:     card.ID,
				CustomerID: card.CustomerID,
				CardNumber: crypto.SafeString(number),
				ExpiryDate: crypto.SafeString(expiry),
				LastFour:   card.LastFourDigits,
			})
		}
		out = append(out, mc)
	}
	return out, nil
}
