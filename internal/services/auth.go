package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/designhire-backend/internal/data/repos"
	types "github.com/yungbote/designhire-backend/internal/domain"
	userdomain "github.com/yungbote/designhire-backend/internal/domain/user"
	"github.com/yungbote/designhire-backend/internal/platform/apierr"
	"github.com/yungbote/designhire-backend/internal/platform/ctxutil"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
	"github.com/yungbote/designhire-backend/internal/platform/logger"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	minPasswordLength = 8
	maxPasswordLength = 100
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

type tokenClaims struct {
	Role string `json:"role"`
	Typ  string `json:"typ"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Signup(ctx context.Context, email, password, role string) (*types.User, *TokenPair, error)
	Login(ctx context.Context, email, password string) (*types.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Me(ctx context.Context) (*types.User, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	jwtSecretKey []byte
	accessTTL    time.Duration
	refreshTTL   time.Duration
	now          func() time.Time
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:           db,
		log:          log.With("service", "AuthService"),
		userRepo:     userRepo,
		jwtSecretKey: []byte(jwtSecretKey),
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
		now:          time.Now,
	}
}

func (as *authService) GetAccessTTL() time.Duration { return as.accessTTL }

func (as *authService) Signup(ctx context.Context, email, password, role string) (*types.User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, apierr.BadRequest("invalid_email", "A valid email is required")
	}
	if n := len(password); n < minPasswordLength || n > maxPasswordLength {
		return nil, nil, apierr.BadRequest("invalid_password", fmt.Sprintf("Password must be between %d and %d characters", minPasswordLength, maxPasswordLength))
	}
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		role = userdomain.RoleDesigner
	}
	if !userdomain.ValidRole(role) {
		return nil, nil, apierr.BadRequest("invalid_role", "Role must be one of designer, hirer, admin")
	}

	dbc := dbctx.Context{Ctx: ctx}
	exists, err := as.userRepo.EmailExists(dbc, email)
	if err != nil {
		return nil, nil, apierr.Internal("signup_failed", err)
	}
	if exists {
		return nil, nil, apierr.BadRequest("email_taken", "Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, apierr.Internal("signup_failed", fmt.Errorf("hash password: %w", err))
	}
	now := as.now().UTC()
	user := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  string(hash),
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := as.userRepo.Create(dbc, []*types.User{user}); err != nil {
		return nil, nil, apierr.Internal("signup_failed", fmt.Errorf("create user: %w", err))
	}
	as.log.Info("User registered", "user_id", user.ID, "role", user.Role)

	pair, err := as.issuePair(user)
	if err != nil {
		return nil, nil, apierr.Internal("token_failed", err)
	}
	return user, pair, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*types.User, *TokenPair, error) {
	user, err := as.userRepo.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		return nil, nil, apierr.Internal("login_failed", err)
	}
	if user == nil {
		return nil, nil, apierr.Unauthorized("invalid_credentials", "Incorrect email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, apierr.Unauthorized("invalid_credentials", "Incorrect email or password")
	}
	if !user.IsActive {
		return nil, nil, apierr.New(http.StatusForbidden, "inactive_user", errors.New("Inactive user"))
	}
	pair, err := as.issuePair(user)
	if err != nil {
		return nil, nil, apierr.Internal("token_failed", err)
	}
	return user, pair, nil
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := as.parse(refreshToken)
	if err != nil || claims.Typ != tokenTypeRefresh {
		return nil, apierr.Unauthorized("invalid_refresh_token", "Invalid refresh token")
	}
	user, err := as.loadActiveUser(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	pair, err := as.issuePair(user)
	if err != nil {
		return nil, apierr.Internal("token_failed", err)
	}
	return pair, nil
}

func (as *authService) Me(ctx context.Context) (*types.User, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.Unauthorized("unauthorized", "not authenticated")
	}
	user, err := as.userRepo.GetByID(dbctx.Context{Ctx: ctx}, rd.UserID)
	if err != nil {
		return nil, apierr.Internal("load_user_failed", err)
	}
	if user == nil {
		return nil, apierr.NotFound("user_not_found", "User not found")
	}
	return user, nil
}

// SetContextFromToken validates an access token and attaches the caller to ctx.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims, err := as.parse(tokenString)
	if err != nil {
		as.log.Debug("Token rejected", "error", err)
		return ctx, apierr.Unauthorized("unauthorized", "Could not validate credentials")
	}
	if claims.Typ != tokenTypeAccess {
		return ctx, apierr.Unauthorized("unauthorized", "Invalid token type")
	}
	user, err := as.loadActiveUser(ctx, claims.Subject)
	if err != nil {
		return ctx, err
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		TokenString: tokenString,
		UserID:      user.ID,
		Role:        user.Role,
	}), nil
}

func (as *authService) loadActiveUser(ctx context.Context, subject string) (*types.User, error) {
	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, apierr.Unauthorized("unauthorized", "Could not validate credentials")
	}
	user, err := as.userRepo.GetByID(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return nil, apierr.Internal("load_user_failed", err)
	}
	if user == nil {
		return nil, apierr.Unauthorized("unauthorized", "User not found")
	}
	if !user.IsActive {
		return nil, apierr.New(http.StatusForbidden, "inactive_user", errors.New("Inactive user"))
	}
	return user, nil
}

func (as *authService) issuePair(user *types.User) (*TokenPair, error) {
	access, err := as.sign(user, tokenTypeAccess, as.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := as.sign(user, tokenTypeRefresh, as.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int(as.accessTTL.Seconds()),
	}, nil
}

func (as *authService) sign(user *types.User, typ string, ttl time.Duration) (string, error) {
	now := as.now().UTC()
	claims := tokenClaims{
		Role: user.Role,
		Typ:  typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.New().String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(as.jwtSecretKey)
}

func (as *authService) parse(tokenString string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) { return as.jwtSecretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(as.now),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
