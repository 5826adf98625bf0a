// Package tracker はプロジェクト・タスク・コメントのユースケースを提供します。
//
// すべての書き込みは認可の判定から副作用（監査ログと通知）の記録までを
// 1つのストアトランザクション内で行います。途中で失敗した場合は何も残りません。
package tracker

import (
	"fmt"

	"github.com/stsysd/tasktrail/model"
	"github.com/stsysd/tasktrail/store"
	"go.uber.org/zap"
)

// permissionDenied は書き込みを拒否したときのメッセージです。
const permissionDenied = "You do not have permission to perform this action."

// Service はトラッカーのユースケースを実装します。
type Service struct {
	store  store.Store
	logger *zap.Logger
}

// NewService は新しいServiceを生成します。logger が nil の場合はログを出力しません。
func NewService(s store.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  s,
		logger: logger.Named("tracker"),
	}
}

func forbidden() error {
	return model.NewForbiddenError(permissionDenied)
}

// invalidPK は参照先が存在しない場合のバリデーションエラーです。
func invalidPK(field string, id int64) error {
	return model.NewFieldError(field, fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
}
