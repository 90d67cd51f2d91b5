package domain

// Role は発言者です。
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Kind はトランスクリプト上のエントリ種別です。
type Kind string

const (
	KindPlain             Kind = "plain"
	KindImageRequest      Kind = "image-request"
	KindImageConfirmation Kind = "image-confirmation"
	KindProvisional       Kind = "provisional"
)

// Entry はトランスクリプトの1エントリです。
// ID はハンドルとして削除に使い、CorrelationID は非同期リクエストの
// プレースホルダーを特定するのに使います。
type Entry struct {
	ID            uint64
	Role          Role
	Text          string
	Kind          Kind
	CorrelationID string
	AttachedImage string
}

// IsProvisional は結果待ちの仮エントリかどうかを返します。
func (e Entry) IsProvisional() bool {
	return e.Kind == KindProvisional
}
