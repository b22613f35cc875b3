package usecase

import (
	"barbershop-booking/internal/pkg/errs"
	"barbershop-booking/internal/pkg/jwt"

	"github.com/google/uuid"
)

var ErrUnknownStaffRole = errs.New("unknown staff role")

// StaffIdentity is the authenticated dashboard user behind a request.
type StaffIdentity struct {
	UserID uuid.UUID
	ShopID uuid.UUID
	Role   string
}

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (*StaffIdentity, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (*StaffIdentity, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	switch claims.Role {
	case jwt.RoleOwner, jwt.RoleBarber:
	default:
		return nil, ErrUnknownStaffRole
	}

	return &StaffIdentity{
		UserID: claims.UserID,
		ShopID: claims.ShopID,
		Role:   claims.Role,
	}, nil
}
