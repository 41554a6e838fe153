package user

import (
	"context"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// ResolveOwner 确定开票或借阅所属的读者ID
// 1. userID为0时取当前账号关联的读者
// 2. 普通账号只能为自己办理,管理员可指定任意读者
func ResolveOwner(ctx context.Context, users Service, accountID uint, isAdmin bool, userID uint) (uint, error) {
	if userID == 0 {
		profile, err := users.GetByAccount(ctx, accountID)
		if err != nil {
			return 0, err
		}
		return profile.ID, nil
	}

	u, err := users.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if !isAdmin && u.AccountID != accountID {
		return 0, apperrors.ErrForbidden
	}
	return u.ID, nil
}
