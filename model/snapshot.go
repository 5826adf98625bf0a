package model

import "strconv"

// TrackedField は変更時に監査ログと通知の対象となるタスクのフィールドです。
type TrackedField string

const (
	FieldStatus      TrackedField = "status"
	FieldDescription TrackedField = "description"
	FieldAssignedTo  TrackedField = "assigned_to"
)

// TrackedFields は差分を評価する順序で並んだ監査対象フィールドです。
var TrackedFields = []TrackedField{FieldStatus, FieldDescription, FieldAssignedTo}

// TaskSnapshot は監査対象フィールドのある時点の値です。
// AssigneeID が 0 の場合は担当者なしを表します。
type TaskSnapshot struct {
	Status       TaskStatus
	Description  string
	AssigneeID   int64
	AssigneeName string
}

// FieldChange は1フィールドの変更前後の値です。
type FieldChange struct {
	Field    TrackedField
	OldValue string
	NewValue string
}

// Value はフィールドの値を監査ログ用の文字列で返します。
func (s TaskSnapshot) Value(f TrackedField) string {
	switch f {
	case FieldStatus:
		return string(s.Status)
	case FieldDescription:
		return s.Description
	case FieldAssignedTo:
		if s.AssigneeID == 0 {
			return ""
		}
		if s.AssigneeName == "" {
			return strconv.FormatInt(s.AssigneeID, 10)
		}
		return s.AssigneeName
	}
	return ""
}

func (s TaskSnapshot) differs(other TaskSnapshot, f TrackedField) bool {
	switch f {
	case FieldStatus:
		return s.Status != other.Status
	case FieldDescription:
		return s.Description != other.Description
	case FieldAssignedTo:
		// 担当者は表示名ではなくIDで比較する
		return s.AssigneeID != other.AssigneeID
	}
	return false
}

// DiffSnapshots は変更のあったフィールドを TrackedFields の順で返します。
func DiffSnapshots(before, after TaskSnapshot) []FieldChange {
	var changes []FieldChange
	for _, f := range TrackedFields {
		if !before.differs(after, f) {
			continue
		}
		changes = append(changes, FieldChange{
			Field:    f,
			OldValue: before.Value(f),
			NewValue: after.Value(f),
		})
	}
	return changes
}
