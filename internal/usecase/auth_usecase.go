package usecase

import (
	"context"
	"errors"
	"strconv"

	"go-hospital-server/internal/converter"
	"go-hospital-server/internal/delivery/dto"
	"go-hospital-server/internal/domain/entity"
	"go-hospital-server/internal/domain/repository"
	"go-hospital-server/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameAlreadyExists = errors.New("duplicate username")
	ErrInvalidRole           = errors.New("invalid role")
	ErrInvalidCredentials    = errors.New("invalid username or password")
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		doctorRepo:   doctorRepo,
		auditService: auditService,
	}
}

// doctorProfileFor returns the booking profile a newly registered
// doctor account starts with. The display name defaults to the
// username until the profile is filled in; other roles have none.
func doctorProfileFor(user *entity.User) *entity.Doctor {
	if user.Role != entity.RoleDoctor {
		return nil
	}
	return &entity.Doctor{
		Username: user.Username,
		Name:     user.Username,
	}
}

// Register creates a user account. Username uniqueness is enforced by
// the users_username unique constraint inside the same transaction as
// the insert, so two concurrent registrations of one username leave
// exactly one row.
func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if !entity.ValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user := &entity.User{
		Username: req.Username,
		Password: string(hashedPassword),
		Role:     req.Role,
		Age:      req.Age,
		Phone:    req.Phone,
		Address:  req.Address,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "username") {
			return nil, ErrUsernameAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	// A doctor account is bookable from the moment it registers, so
	// the profile row is created in the same transaction.
	if doctor := doctorProfileFor(user); doctor != nil {
		if err := u.doctorRepo.Create(tx, doctor); err != nil {
			if isDuplicateKeyError(err, "username") {
				return nil, ErrUsernameAlreadyExists
			}
			u.log.Warnf("Failed to create doctor profile: %+v", err)
			return nil, err
		}
	}

	if err := u.auditService.LogCreate(tx, user.Username, entity.AuditActionUserRegister, "user", strconv.Itoa(int(user.ID)), map[string]interface{}{
		"username": user.Username,
		"role":     user.Role,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("User registered: username=%s, role=%s", user.Username, user.Role)
	return converter.UserToResponse(user), nil
}

// Login is a plain credential check; no session or token is issued.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := u.userRepo.FindByUsername(u.db.WithContext(ctx), req.Username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Best effort: a failed audit write must not fail the login itself.
	_ = u.auditService.LogCreate(u.db.WithContext(ctx), user.Username, entity.AuditActionUserLogin, "user", strconv.Itoa(int(user.ID)), map[string]interface{}{
		"role": user.Role,
	})

	return &dto.LoginResponse{
		Username: user.Username,
		Role:     user.Role,
	}, nil
}
