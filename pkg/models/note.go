package models

import "time"

// NoteType categorizes a note's content format.
type NoteType string

const (
	NoteTypeText       NoteType = "text"
	NoteTypeMarkdown   NoteType = "markdown"
	NoteTypeWhiteboard NoteType = "whiteboard"
)

// Note is a fully loaded note, including its content.
type Note struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content,omitempty"`
	Tags       []string  `json:"tags"`
	FolderPath string    `json:"folder_path,omitempty"` // empty = vault root
	Type       NoteType  `json:"note_type"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NoteMetadata carries the fields needed for listings and tree display
// without the full content.
type NoteMetadata struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Tags           []string  `json:"tags"`
	FolderPath     string    `json:"folder_path,omitempty"`
	Type           NoteType  `json:"note_type"`
	ContentPreview string    `json:"content_preview"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Metadata derives listing metadata from a full note.
func (n *Note) Metadata(previewLen int) NoteMetadata {
	preview := n.Content
	if runes := []rune(preview); len(runes) > previewLen {
		preview = string(runes[:previewLen])
	}
	return NoteMetadata{
		ID:             n.ID,
		Title:          n.Title,
		Tags:           n.Tags,
		FolderPath:     n.FolderPath,
		Type:           n.Type,
		ContentPreview: preview,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
	}
}
