// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"adboard_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// defaultRoleName は登録時に全ユーザーへ付与されるロール名です。
	defaultRoleName = "user"

	// refreshTokenTTL はリフレッシュセッションの有効期間です。
	refreshTokenTTL = 30 * 24 * time.Hour
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByUniquifier は安定識別子（fs_uniquifier）に一致するユーザーを取得します。
	FindByUniquifier(ctx context.Context, uid string) (*entity.User, error)

	// EnsureRole は指定された名前のロールを取得し、存在しなければ作成します。
	EnsureRole(ctx context.Context, name string) (*entity.Role, error)
}

// TokenGenerator はアクセストークン生成のインターフェースを定義します。
// subクレームにはユーザーの安定識別子を載せます。
type TokenGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みトークンを生成します。
	GenerateToken(uid string, email string) (string, error)
}

// SessionMeta はセッション作成時に記録されるクライアントメタデータです。
type SessionMeta struct {
	UserAgent string
	IPAddress string
}

// TokenPair はログイン・リフレッシュ成功時に返されるトークンの組です。
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, sessions SessionRepository, tokens TokenGenerator) *authUsecase {
	return &authUsecase{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Signup はハッシュ化されたパスワードで新規ユーザーを登録します。
// 安定識別子（fs_uniquifier）を発行し、デフォルトロールを付与します。
func (u *authUsecase) Signup(ctx context.Context, email, password string) error {
	// パスワード強度を検証
	if err := validatePassword(password); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	role, err := u.users.EnsureRole(ctx, defaultRoleName)
	if err != nil {
		return fmt.Errorf("failed to resolve default role: %w", err)
	}

	user := &entity.User{
		Email:        email,
		Password:     string(hashed),
		Active:       true,
		FSUniquifier: uuid.NewString(),
		Roles:        []entity.Role{*role},
	}
	return u.users.Create(ctx, user)
}

// Login はユーザーを認証し、成功時にアクセストークンとリフレッシュセッションを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string, meta SessionMeta) (*TokenPair, error) {
	// メールアドレスでユーザーを検索
	user, err := u.users.FindByEmail(ctx, email)

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // ダミーハッシュ
	if err == nil {
		passwordHash = user.Password
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	// 無効化されたアカウントはログイン不可
	if !user.Active {
		return nil, ErrUserInactive
	}

	return u.issueTokens(ctx, user, meta)
}

// Refresh はリフレッシュトークンを検証し、新しいトークンペアを発行します。
// 使用されたセッションは失効させ、トークンをローテーションします。
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string, meta SessionMeta) (*TokenPair, error) {
	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if session.IsRevoked() {
		return nil, ErrSessionRevoked
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	// ローテーション: 旧セッションを失効させてから新規発行
	if err := u.sessions.Revoke(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("failed to revoke old session: %w", err)
	}
	return u.issueTokens(ctx, user, meta)
}

// Logout は指定ユーザーの全セッションを失効させます。
func (u *authUsecase) Logout(ctx context.Context, uid string) error {
	user, err := u.users.FindByUniquifier(ctx, uid)
	if err != nil {
		return err
	}
	return u.sessions.RevokeAllByUserID(ctx, user.ID)
}

// issueTokens はアクセストークンの生成とリフレッシュセッションの永続化を行います。
func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User, meta SessionMeta) (*TokenPair, error) {
	access, err := u.tokens.GenerateToken(user.FSUniquifier, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	refresh, err := newRefreshToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &entity.Session{
		ID:        refresh,
		UserID:    user.ID,
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(refreshTokenTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// newRefreshToken は暗号論的に安全な64文字のhexトークンを生成します。
func newRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
