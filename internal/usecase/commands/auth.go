package commands

import (
	"context"

	"github.com/google/uuid"

	"salon-assist/internal/domain/staff"
	"salon-assist/internal/pkg/errs"
	"salon-assist/internal/pkg/jwt"
	"salon-assist/internal/pkg/password"
	"salon-assist/internal/usecase/queries"
)

var (
	ErrStaffNotFound        = errs.New("staff not found")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrStaffInactive        = errs.New("staff inactive")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type LoginResult struct {
	StaffID     uuid.UUID
	AccessToken string
	Staff       *queries.AuthorizedStaffView
}

type AuthCommands interface {
	Login(ctx context.Context, credentials staff.Credentials) (*LoginResult, error)
}

type authCommandsImpl struct {
	readStore  queries.StaffReadStore
	jwtService *jwt.Service
}

func NewAuthCommands(readStore queries.StaffReadStore, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		readStore:  readStore,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, credentials staff.Credentials) (*LoginResult, error) {
	view, hashedPassword, err := a.readStore.FindByEmail(ctx, credentials.Email().Value())
	if err != nil {
		// Same error as a password mismatch to prevent account enumeration
		return nil, ErrInvalidCredentials
	}
	if view == nil {
		return nil, ErrStaffNotFound
	}
	if !view.IsActive {
		return nil, ErrStaffInactive
	}

	if err := password.Verify(hashedPassword, credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	role, err := staff.NewRole(view.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	token, err := a.jwtService.GenerateToken(view.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		StaffID:     view.ID,
		AccessToken: token,
		Staff:       view,
	}, nil
}
