package domain

import "time"

// NoteType 笔记类型
type NoteType string

const (
	NoteTypeNote          NoteType = "note"
	NoteTypeNoteUpdated   NoteType = "note_updated"
	NoteTypeQuickNote     NoteType = "quick_note"
	NoteTypeMessageSent   NoteType = "message_sent"
	NoteTypeStatusUpdated NoteType = "status_updated"
)

// Valid 判断笔记类型是否合法
func (t NoteType) Valid() bool {
	switch t {
	case NoteTypeNote, NoteTypeNoteUpdated, NoteTypeQuickNote, NoteTypeMessageSent, NoteTypeStatusUpdated:
		return true
	}
	return false
}

// Deletable reports whether a user may delete notes of this type
// Deletable 仅用户编写的笔记可删除
func (t NoteType) Deletable() bool {
	switch t {
	case NoteTypeNote, NoteTypeNoteUpdated, NoteTypeQuickNote:
		return true
	}
	return false
}

// Note 笔记领域模型
type Note struct {
	ID           string
	ConnectionID string
	Content      string
	Type         NoteType
	CreatedAt    time.Time
}
