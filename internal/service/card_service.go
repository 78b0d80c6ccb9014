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

// cardRoles are the roles allowed to touch the card endpoints at all;
// ownership narrows what a customer can reach.
var cardRoles = []model.Role{model.RoleAdmin, model.RoleMerchant, model.RoleCustomer}

// StoreCardInput is the plaintext card data accepted by Store. It exists
// only in memory; every sensitive field is encrypted before persistence.
type StoreCardInput struct {
	CustomerID uint
	Number     string
	Holder     string
	Expiry     string
	CVV        string
}

// CardDetails is the decrypted projection returned to authorized viewers.
// It never carries the CVV.
type CardDetails struct {
	CardID     uint   `json:"card_id"`
	CustomerID uint   `json:"customer_id"`
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
	LastFour   string `json:"last_four_digits"`
}

// CardService handles vaulted card operations.
type CardService interface {
	Store(ctx context.Context, actor *auth.Principal, ip string, in StoreCardInput) (*model.Card, error)
	List(ctx context.Context, actor *auth.Principal) ([]CardDetails, error)
	ListByCustomer(ctx context.Context, actor *auth.Principal, customerID uint) ([]CardDetails, error)
	Delete(ctx context.Context, actor *auth.Principal, ip string, cardID uint) error
}

type cardService struct {
	store     *repository.Store
	tx        repository.TxManager
	cipher    *crypto.Cipher
	validator *CardValidator
}

// NewCardService creates a new card service.
func NewCardService(store *repository.Store, tx repository.TxManager, cipher *crypto.Cipher) CardService {
	return &cardService{
		store:     store,
		tx:        tx,
		cipher:    cipher,
		validator: NewCardValidator(),
	}
}

// resolveCustomer loads the target customer and applies the ownership rule.
// A customer-role actor probing a foreign or nonexistent customer id gets
// the same forbidden answer either way, so responses never betray whether
// the row exists.
func (s *cardService) resolveCustomer(ctx context.Context, actor *auth.Principal, customerID uint) (*model.Customer, error) {
	customer, err := s.store.Customers.FindByID(ctx, customerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			if actor != nil && actor.Role.Equal(model.RoleCustomer) {
				return nil, errors.ErrForbidden
			}
			return nil, errors.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}

	owner := uint(0) // unlinked customer rows have no self-service owner
	if customer.UserID != nil {
		owner = *customer.UserID
	}
	if d := auth.Authorize(actor, cardRoles, &owner); !d.Allowed {
		if d.Reason == auth.DenyLoginRequired {
			return nil, errors.ErrLoginRequired
		}
		return nil, errors.ErrForbidden
	}
	return customer, nil
}

// Store validates, encrypts, and persists a card, writing the audit entry
// in the same transaction.
func (s *cardService) Store(ctx context.Context, actor *auth.Principal, ip string, in StoreCardInput) (*model.Card, error) {
	number := s.validator.NormalizeNumber(in.Number)
	if err := s.validator.ValidateNumber(number); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateCVV(in.CVV); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateExpiry(in.Expiry); err != nil {
		return nil, err
	}
	holder := in.Holder
	if holder == "" {
		holder = "Card"
	}

	customer, err := s.resolveCustomer(ctx, actor, in.CustomerID)
	if err != nil {
		return nil, err
	}

	numberEnc, err := s.cipher.Encrypt(number)
	if err != nil {
		return nil, fmt.Errorf("encrypt card number: %w", err)
	}
	holderEnc, err := s.cipher.Encrypt(holder)
	if err != nil {
		return nil, fmt.Errorf("encrypt card holder: %w", err)
	}
	expiryEnc, err := s.cipher.Encrypt(in.Expiry)
	if err != nil {
		return nil, fmt.Errorf("encrypt expiry: %w", err)
	}
	cvvEnc, err := s.cipher.Encrypt(in.CVV)
	if err != nil {
		return nil, fmt.Errorf("encrypt cvv: %w", err)
	}

	card := &model.Card{
		CustomerID:     customer.ID,
		CardNumberEnc:  numberEnc,
		CardHolderEnc:  holderEnc,
		ExpiryDateEnc:  expiryEnc,
		CVVEnc:         cvvEnc,
		LastFourDigits: s.validator.LastFour(number),
		Status:         model.StatusActive,
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context, st *repository.Store) error {
		if err := st.Cards.Create(ctx, card); err != nil {
			return fmt.Errorf("create card: %w", err)
		}
		return audit.NewRecorder(st.AuditLogs).Record(ctx, audit.Entry{
			ActorID:  actor.UserID,
			Action:   audit.ActionStoreCard,
			Table:    "card_vault",
			RecordID: customer.ID,
			NewValue: fmt.Sprintf("card ending %s", card.LastFourDigits),
			IP:       ip,
		})
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// List returns the cards visible to the actor: customers see only the cards
// of their own linked customer record, merchants and admins see all active
// cards.
func (s *cardService) List(ctx context.Context, actor *auth.Principal) ([]CardDetails, error) {
	if actor != nil && actor.Role.Equal(model.RoleCustomer) {
		own, err := s.store.Customers.FindByUserID(ctx, actor.UserID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return []CardDetails{}, nil
			}
			return nil, fmt.Errorf("find customer: %w", err)
		}
		cards, err := s.store.Cards.ListActiveByCustomer(ctx, own.ID)
		if err != nil {
			return nil, fmt.Errorf("list cards: %w", err)
		}
		return s.project(cards)
	}

	cards, err := s.store.Cards.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return s.project(cards)
}

// ListByCustomer returns one customer's active cards, ownership-gated.
func (s *cardService) ListByCustomer(ctx context.Context, actor *auth.Principal, customerID uint) ([]CardDetails, error) {
	customer, err := s.resolveCustomer(ctx, actor, customerID)
	if err != nil {
		return nil, err
	}
	cards, err := s.store.Cards.ListActiveByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return s.project(cards)
}

// Delete soft-deactivates a card and audits the change.
func (s *cardService) Delete(ctx context.Context, actor *auth.Principal, ip string, cardID uint) error {
	card, err := s.store.Cards.FindByID(ctx, cardID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			if actor != nil && actor.Role.Equal(model.RoleCustomer) {
				return errors.ErrForbidden
			}
			return errors.ErrCardNotFound
		}
		return fmt.Errorf("find card: %w", err)
	}

	if _, err := s.resolveCustomer(ctx, actor, card.CustomerID); err != nil {
		return err
	}

	// An already-deactivated card is not deletable again; repeating the
	// update would append a second audit row for a mutation that never
	// happened.
	if card.Status != model.StatusActive {
		return errors.ErrCardNotFound
	}

	return s.tx.WithTx(ctx, func(ctx context.Context, st *repository.Store) error {
		if err := st.Cards.UpdateStatus(ctx, card.ID, model.StatusInactive); err != nil {
			return fmt.Errorf("deactivate card: %w", err)
		}
		return audit.NewRecorder(st.AuditLogs).Record(ctx, audit.Entry{
			ActorID:  actor.UserID,
			Action:   audit.ActionDeleteCard,
			Table:    "card_vault",
			RecordID: card.ID,
			OldValue: card.Status,
			NewValue: model.StatusInactive,
			IP:       ip,
		})
	})
}

// project decrypts the viewable fields of each card. The CVV is never
// decrypted on a read path.
func (s *cardService) project(cards []model.Card) ([]CardDetails, error) {
	out := make([]CardDetails, 0, len(cards))
	for _, card := range cards {
		number, err := s.cipher.Decrypt(card.CardNumberEnc)
		if err != nil {
			return nil, fmt.Errorf("decrypt card %d number: %w", card.ID, err)
		}
		expiry, err := s.cipher.Decrypt(card.ExpiryDateEnc)
		if err != nil {
			return nil, fmt.Errorf("decrypt card %d expiry: %w", card.ID, err)
		}
		out = append(out, CardDetails{
			CardID:     card.ID,
			CustomerID: card.CustomerID,
			CardNumber: crypto.SafeString(number),
			ExpiryDate: crypto.SafeString(expiry),
			LastFour:   card.LastFourDigits,
		})
	}
	return out, nil
}
