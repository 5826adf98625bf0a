// Package model は、アプリケーションのデータモデル定義を提供します。
package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

// プロジェクト名の最大長
const maxProjectNameLength = 100

// Project はプロジェクトエンティティを表すモデルです。
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`        // プロジェクト名
	Description string    `json:"description"` // プロジェクトの説明
	Manager     UserRef   `json:"manager"`     // 管理者
	Members     []UserRef `json:"members"`     // メンバー（管理者を含む）
	CreatedAt   time.Time `json:"created_at"`  // 作成日時
	UpdatedAt   time.Time `json:"updated_at"`  // 更新日時
}

// NewProject は新しいProjectインスタンスを作成します。
// 管理者は常にメンバーにも含まれます。
func NewProject(name, description string, manager UserRef) (*Project, error) {
	t := now()
	p := &Project{
		Name:        strings.TrimSpace(name),
		Description: description,
		Manager:     manager,
		Members:     []UserRef{manager},
		CreatedAt:   t,
		UpdatedAt:   t,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadProject は既存のProjectインスタンスを作成します。
func LoadProject(id int64, name, description string, manager UserRef, members []UserRef, createdAt, updatedAt time.Time) (*Project, error) {
	if id <= 0 {
		return nil, NewValidationError("id is required for loaded project")
	}
	if members == nil {
		members = []UserRef{}
	}
	p := &Project{
		ID:          id,
		Name:        name,
		Description: description,
		Manager:     manager,
		Members:     members,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate はプロジェクトのデータバリデーションを行います。
func (p *Project) Validate() error {
	if p.Name == "" {
		return NewFieldError("name", "this field is required")
	}
	if utf8.RuneCountInString(p.Name) > maxProjectNameLength {
		return NewFieldError("name", "ensure this field has no more than 100 characters")
	}
	if p.Manager.ID <= 0 {
		return NewValidationError("manager is required")
	}
	if !p.HasMember(p.Manager.ID) {
		return NewValidationError("manager must be a member of the project")
	}
	if p.CreatedAt.IsZero() {
		return NewValidationError("created_at is required")
	}
	if p.UpdatedAt.IsZero() {
		return NewValidationError("updated_at is required")
	}
	return nil
}

// IsManager は指定ユーザーがプロジェクトの管理者かどうかを返します。
func (p *Project) IsManager(userID int64) bool {
	return p.Manager.ID == userID
}

// HasMember は指定ユーザーがプロジェクトのメンバーかどうかを返します。
func (p *Project) HasMember(userID int64) bool {
	for _, m := range p.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// Member はメンバーの公開情報を返します。
func (p *Project) Member(userID int64) (UserRef, bool) {
	for _, m := range p.Members {
		if m.ID == userID {
			return m, true
		}
	}
	return UserRef{}, false
}
