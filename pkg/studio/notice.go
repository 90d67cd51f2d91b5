package studio

import (
	"errors"
	"fmt"
)

// Notice は入口処理が返すエラーです。Message はそのままユーザーに表示できます。
// errors.Is でセンチネル (domain.Err*) を判定できます。
type Notice struct {
	Message string
	Err     error
}

func (n *Notice) Error() string {
	return n.Message
}

func (n *Notice) Unwrap() error {
	return n.Err
}

func newNotice(message string, sentinel error, cause error) *Notice {
	err := sentinel
	if cause != nil {
		err = fmt.Errorf("%w: %w", sentinel, cause)
	}
	return &Notice{Message: message, Err: err}
}

// AsNotice は err から Notice を取り出します。
func AsNotice(err error) (*Notice, bool) {
	var n *Notice
	if errors.As(err, &n) {
		return n, true
	}
	return nil, false
}
