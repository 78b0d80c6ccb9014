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

// CreateCustomerInput is the plaintext customer data accepted by Create.
type CreateCustomerInput struct {
	MerchantID uint
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	UserID     *uint
}

// CreateCustomerWithCardInput combines a customer and their first card for
// the compound endpoint.
type CreateCustomerWithCardInput struct {
	CreateCustomerInput
	CardNumber string
	CardHolder string
	Expiry     string
	CVV        string
}

// CustomerDetails is the decrypted customer projection.
type CustomerDetails struct {
	CustomerID uint   `json:"customer_id"`
	MerchantID uint   `json:"merchant_id"`
	FirstName  string `json:"firstname"`
	LastName   string `json:"lastname"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

// CustomerService handles customer records on behalf of merchants.
type CustomerService interface {
	Create(ctx context.Context, actor *auth.Principal, ip string, in CreateCustomerInput) (*model.Customer, error)
	CreateWithCard(ctx context.Context, actor *auth.Principal, ip string, in CreateCustomerWithCardInput) (*model.Customer, *model.Card, error)
	List(ctx context.Context) ([]CustomerDetails, error)
}

type customerService struct {
	store     *repository.Store
	tx        repository.TxManager
	cipher    *crypto.Cipher
	validator *CardValidator
}

// NewCustomerService creates a new customer service.
func NewCustomerService(store *repository.Store, tx repository.TxManager, cipher *crypto.Cipher) CustomerService {
	return &customerService{
		store:     store,
		tx:        tx,
		cipher:    cipher,
		validator: NewCardValidator(),
	}
}

func (s *customerService) buildCustomer(ctx context.Context, in CreateCustomerInput) (*model.Customer, error) {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Phone == "" {
		return nil, errors.ErrMissingFields
	}

	if _, err := s.store.Merchants.FindByID(ctx, in.MerchantID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrMerchantNotFound
		}
		return nil, fmt.Errorf("find merchant: %w", err)
	}
	if in.UserID != nil {
		if _, err := s.store.Users.FindByID(ctx, *in.UserID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.ErrUserNotFound
			}
			return nil, fmt.Errorf("find user: %w", err)
		}
	}

	emailEnc, err := s.cipher.Encrypt(in.Email)
	if err != nil {
		return nil, fmt.Errorf("encrypt email: %w", err)
	}
	phoneEnc, err := s.cipher.Encrypt(in.Phone)
	if err != nil {
		return nil, fmt.Errorf("encrypt phone: %w", err)
	}

	return &model.Customer{
		MerchantID: in.MerchantID,
		UserID:     in.UserID,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		EmailEnc:   emailEnc,
		PhoneEnc:   phoneEnc,
		Status:     model.StatusActive,
	}, nil
}

// Create adds a customer under a merchant, with contact fields encrypted
// and the audit entry in the same transaction.
func (s *customerService) Create(ctx context.Context, actor *auth.Principal, ip string, in CreateCustomerInput) (*model.Customer, error) {
	customer, err := s.buildCustomer(ctx, in)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context, st *repository.Store) error {
		if err := st.Customers.Create(ctx, customer); err != nil {
			return fmt.Errorf("create customer: %w", err)
		}
		return audit.NewRecorder(st.AuditLogs).Record(ctx, audit.Entry{
			ActorID:  actor.UserID,
			Action:   audit.ActionAddCustomer,
			Table:    "customers",
			RecordID: customer.ID,
			NewValue: fmt.Sprintf("%s %s", customer.FirstName, customer.LastName),
			IP:       ip,
		})
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// CreateWithCard creates a customer and vaults their first card as one
// atomic unit: if the card insert fails, the customer insert is rolled back
// with it, so no orphan customer survives a half-done compound request.
func (s *customerService) CreateWithCard(ctx context.Context, actor *auth.Principal, ip string, in CreateCustomerWithCardInput) (*model.Customer, *model.Card, error) {
	number := s.validator.NormalizeNumber(in.CardNumber)
	if err := s.validator.ValidateNumber(number); err != nil {
		return nil, nil, err
	}
	if err := s.validator.ValidateCVV(in.CVV); err != nil {
		return nil, nil, err
	}
	if err := s.validator.ValidateExpiry(in.Expiry); err != nil {
		return nil, nil, err
	}

	customer, err := s.buildCustomer(ctx, in.CreateCustomerInput)
	if err != nil {
		return nil, nil, err
	}

	holder := in.CardHolder
	if holder == "" {
		holder = "Card"
	}
	numberEnc, err := s.cipher.Encrypt(number)
	if err != nil {
		return nil, nil, fmt.Errorf("encrypt card number: %w", err)
	}
	holderEnc, err := s.cipher.Encrypt(holder)
	if err != nil {
		return nil, nil, fmt.Errorf("encrypt card holder: %w", err)
	}
	expiryEnc, err := s.cipher.Encrypt(in.Expiry)
	if err != nil {
		return nil, nil, fmt.Errorf("encrypt expiry: %w", err)
	}
	cvvEnc, err := s.cipher.Encrypt(in.CVV)
	if err != nil {
		return nil, nil, fmt.Errorf("encrypt cvv: %w", err)
	}

	card := &model.Card{
		CardNumberEnc:  numberEnc,
		CardHolderEnc:  holderEnc,
		ExpiryDateEnc:  expiryEnc,
		CVVEnc:         cvvEnc,
		LastFourDigits: s.validator.LastFour(number),
		IsDefault:      true, // first card for a brand-new customer
		Status:         model.StatusActive,
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context, st *repository.Store) error {
		if err := st.Customers.Create(ctx, customer); err != nil {
			return fmt.Errorf("create customer: %w", err)
		}
		card.CustomerID = customer.ID
		if err := st.Cards.Create(ctx, card); err != nil {
			return fmt.Errorf("create card: %w", err)
		}
		rec := audit.NewRecorder(st.AuditLogs)
		if err := rec.Record(ctx, audit.Entry{
			ActorID:  actor.UserID,
			Action:   audit.ActionAddCustomer,
			Table:    "customers",
			RecordID: customer.ID,
			NewValue: fmt.Sprintf("%s %s", customer.FirstName, customer.LastName),
			IP:       ip,
		}); err != nil {
			return err
		}
		return rec.Record(ctx, audit.Entry{
			ActorID:  actor.UserID,
			Action:   audit.ActionStoreCard,
			Table:    "card_vault",
			RecordID: customer.ID,
			NewValue: fmt.Sprintf("card ending %s", card.LastFourDigits),
			IP:       ip,
		})
	})
	if err != nil {
		return nil, nil, err
	}
	return customer, card, nil
}

// List returns all active customers with contact fields decrypted.
func (s *customerService) List(ctx context.Context) ([]CustomerDetails, error) {
	customers, err := s.store.Customers.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	out := make([]CustomerDetails, 0, len(customers))
	for _, c := range customers {
		details, err := s.projectCustomer(c)
		if err != nil {
			return nil, err
		}
		out = append(out, details)
	}
	return out, nil
}

func (s *customerService) projectCustomer(c model.Customer) (CustomerDetails, error) {
	email, err := s.cipher.Decrypt(c.EmailEnc)
	if err != nil {
		return CustomerDetails{}, fmt.Errorf("decrypt customer %d email: %w", c.ID, err)
	}
	phone, err := s.cipher.Decrypt(c.PhoneEnc)
	if err != nil {
		return CustomerDetails{}, fmt.Errorf("decrypt customer %d phone: %w", c.ID, err)
	}
	return CustomerDetails{
		CustomerID: c.ID,
		MerchantID: c.MerchantID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Email:      crypto.SafeString(email),
		Phone:      crypto.SafeString(phone),
	}, nil
}
