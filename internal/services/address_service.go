package services

import (
	"context"
	"errors"
	"fmt"

	"restaurant-order-backend/internal/models"
	"restaurant-order-backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddressService struct {
	db          *gorm.DB
	addressRepo repositories.AddressRepository
}

func NewAddressService(db *gorm.DB) *AddressService {
	return &AddressService{
		db:          db,
		addressRepo: repositories.NewAddressRepository(db),
	}
}

type CreateAddressRequest struct {
	AddressLine1 string `json:"address_line1" binding:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" binding:"required"`
	PostalCode   string `json:"postal_code" binding:"required"`
	Country      string `json:"country" binding:"required"`
	IsDefault    bool   `json:"is_default"`
}

type UpdateAddressRequest struct {
	AddressLine1 string `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         string `json:"city"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
	IsDefault    *bool  `json:"is_default"`
}

// getOwnedAddress loads an address and hides it behind ErrNotFound when it
// does not belong to the caller.
func getOwnedAddress(ctx context.Context, repo repositories.AddressRepository, addressID string, userID uuid.UUID) (*models.Address, error) {
	id, err := uuid.Parse(addressID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid address ID", ErrInvalidInput)
	}

	address, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: address not found or access denied", ErrNotFound)
		}
		return nil, err
	}
	if address.UserID != userID {
		return nil, fmt.Errorf("%w: address not found or access denied", ErrNotFound)
	}

	return address, nil
}

func (s *AddressService) CreateAddress(ctx context.Context, userID string, req *CreateAddressRequest) (*models.Address, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrInvalidInput)
	}

	address := &models.Address{
		UserID:       userUUID,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		IsDefault:    req.IsDefault,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repositories.NewAddressRepository(tx)
		if req.IsDefault {
			if err := repo.UnsetDefaultAddresses(ctx, userUUID); err != nil {
				return err
			}
		}
		return repo.Create(ctx, address)
	})
	if err != nil {
		return nil, err
	}

	return address, nil
}

func (s *AddressService) GetAddresses(ctx context.Context, userID string) ([]models.Address, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrInvalidInput)
	}

	return s.addressRepo.GetByUserID(ctx, userUUID)
}

func (s *AddressService) UpdateAddress(ctx context.Context, userID, addressID string, req *UpdateAddressRequest) (*models.Address, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrInvalidInput)
	}

	var updated *models.Address
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repositories.NewAddressRepository(tx)

		address, err := getOwnedAddress(ctx, repo, addressID, userUUID)
		if err != nil {
			return err
		}

		if req.AddressLine1 != "" {
			address.AddressLine1 = req.AddressLine1
		}
		if req.AddressLine2 != nil {
			address.AddressLine2 = *req.AddressLine2
		}
		if req.City != "" {
			address.City = req.City
		}
		if req.PostalCode != "" {
			address.PostalCode = req.PostalCode
		}
		if req.Country != "" {
			address.Country = req.Country
		}
		if req.IsDefault != nil {
			if *req.IsDefault {
				if err := repo.UnsetDefaultAddresses(ctx, userUUID); err != nil {
					return err
				}
			}
			// Clearing the flag never promotes another address.
			address.IsDefault = *req.IsDefault
		}

		updated = address
		return repo.Update(ctx, address)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *AddressService) DeleteAddress(ctx context.Context, userID, addressID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("%w: invalid user ID", ErrInvalidInput)
	}

	address, err := getOwnedAddress(ctx, s.addressRepo, addressID, userUUID)
	if err != nil {
		return err
	}

	// Deleting the default address is allowed; the user is simply left with
	// no default afterwards.
	return s.addressRepo.Delete(ctx, address.ID)
}

func (s *AddressService) SetDefaultAddress(ctx context.Context, userID, addressID string) (*models.Address, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrInvalidInput)
	}

	var updated *models.Address
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repositories.NewAddressRepository(tx)

		address, err := getOwnedAddress(ctx, repo, addressID, userUUID)
		if err != nil {
			return err
		}

		if err := repo.UnsetDefaultAddresses(ctx, userUUID); err != nil {
			return err
		}

		address.IsDefault = true
		updated = address
		return repo.Update(ctx, address)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
