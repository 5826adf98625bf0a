package tracker

import (
	"context"

	"github.com/stsysd/tasktrail/model"
	"github.com/stsysd/tasktrail/store"
)

// ListNotifications は actor 宛ての通知を新しい順に返します。
func (s *Service) ListNotifications(ctx context.Context, actorID int64) ([]*model.Notification, error) {
	return s.store.ListNotifications(ctx, actorID)
}

// MarkNotificationRead は actor 宛ての通知を既読にします。
// 他人の通知は存在しないものとして扱います。
func (s *Service) MarkNotificationRead(ctx context.Context, actorID, notificationID int64) (*model.Notification, error) {
	var notification *model.Notification
	err := s.store.InTx(ctx, func(tx store.Store) error {
		if err := tx.MarkNotificationRead(ctx, notificationID, actorID); err != nil {
			return err
		}
		n, err := tx.GetNotification(ctx, notificationID, actorID)
		if err != nil {
			return err
		}
		notification = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return notification, nil
}
