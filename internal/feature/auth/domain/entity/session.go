package entity

import "time"

// Session はユーザーの認証セッション（リフレッシュトークン）を表します。
// ログアウト時の失効管理と監査用のメタデータを保持します。
type Session struct {
	ID        string     // リフレッシュトークン値（64文字のhex文字列）
	UserID    uint       // 対象ユーザーのID
	UserAgent string     // クライアントのUser-Agentヘッダー
	IPAddress string     // クライアントのIPアドレス
	CreatedAt time.Time  // セッション作成日時
	ExpiresAt time.Time  // セッション有効期限
	RevokedAt *time.Time // 失効日時（有効な場合はnil）
}

// IsExpired は有効期限を過ぎている場合にtrueを返します。
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsRevoked は失効済みの場合にtrueを返します。
func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

// IsValid は期限切れでも失効済みでもない場合にtrueを返します。
func (s *Session) IsValid() bool {
	return !s.IsExpired() && !s.IsRevoked()
}
