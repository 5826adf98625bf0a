// Package policy はリソースごとのアクセス可否を判定する純粋な述語を提供します。
//
// 読み取りはプロジェクトのメンバーシップ、書き込みは管理者・担当者・作成者
// といった役割で判定します。述語は副作用を持たず、ストアにも依存しません。
package policy

import "github.com/stsysd/tasktrail/model"

// Op は操作の種類です。
type Op int

const (
	Read Op = iota
	Write
)

func (o Op) String() string {
	if o == Write {
		return "write"
	}
	return "read"
}

// Project はプロジェクトへの操作可否を判定します。
// 読み取りはメンバー、書き込み（削除・メンバー管理を含む）は管理者のみ。
func Project(actorID int64, p *model.Project, op Op) bool {
	if op == Read {
		return p.HasMember(actorID)
	}
	return p.IsManager(actorID)
}

// Task はタスクへの操作可否を判定します。
// 読み取りはプロジェクトのメンバー、書き込み・削除は担当者または管理者のみ。
func Task(actorID int64, t *model.Task, p *model.Project, op Op) bool {
	if op == Read {
		return p.HasMember(actorID)
	}
	return t.IsAssignee(actorID) || p.IsManager(actorID)
}

// Comment はコメントへの操作可否を判定します。
// 読み取りはタスクのプロジェクトのメンバー、書き込み・削除は作成者のみ。
func Comment(actorID int64, c *model.Comment, p *model.Project, op Op) bool {
	if op == Read {
		return p.HasMember(actorID)
	}
	return c.IsAuthor(actorID)
}

// CreateTask はプロジェクトにタスクを作成できるかを判定します。
func CreateTask(actorID int64, p *model.Project) bool {
	return p.IsManager(actorID)
}

// CreateComment はタスクにコメントできるかを判定します。
func CreateComment(actorID int64, p *model.Project) bool {
	return p.HasMember(actorID)
}
