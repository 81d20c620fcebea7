package domain

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// Field limits for tasks.
const (
	MaxTitleLength       = 50
	MaxDescriptionLength = 200

	// DefaultCategory is assigned when a task is created without a category.
	DefaultCategory = "To-Do"
)

// Task-specific validation errors
var (
	// ErrInvalidTitle is returned when a title is empty or longer than MaxTitleLength.
	ErrInvalidTitle = fmt.Errorf("%w: invalid title", ErrValidation)

	// ErrDescriptionTooLong is returned when a description exceeds MaxDescriptionLength.
	ErrDescriptionTooLong = fmt.Errorf("%w: description too long", ErrValidation)

	// ErrTaskOwnerEmpty is returned when a task has no owner.
	ErrTaskOwnerEmpty = errors.New("task owner cannot be empty")
)

// Task is a single to-do item owned by exactly one account. UserID holds the
// owner's email and is the only authorization key for the record.
type Task struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewTask builds a validated task for the given owner. An empty category is
// replaced with DefaultCategory. The ID is left empty for the store to assign.
func NewTask(ownerEmail, title, description, category string) (*Task, error) {
	if category == "" {
		category = DefaultCategory
	}

	task := &Task{
		UserID:      ownerEmail,
		Title:       title,
		Description: description,
		Category:    category,
		CreatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.UserID == "" {
		return ErrTaskOwnerEmpty
	}

	if !ValidTitle(t.Title) {
		return ErrInvalidTitle
	}

	if !ValidDescription(t.Description) {
		return ErrDescriptionTooLong
	}

	return nil
}

// ValidTitle reports whether title is non-empty and within MaxTitleLength characters.
func ValidTitle(title string) bool {
	n := utf8.RuneCountInString(title)
	return n > 0 && n <= MaxTitleLength
}

// ValidDescription reports whether description fits MaxDescriptionLength characters.
// The empty description is valid.
func ValidDescription(description string) bool {
	return utf8.RuneCountInString(description) <= MaxDescriptionLength
}

// TaskPatch is a partial update of a task. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
}

// Sanitize returns the subset of the patch that may be written. Fields that
// are absent, empty, or exceed their length limit are dropped instead of
// failing the whole update.
func (p TaskPatch) Sanitize() TaskPatch {
	var out TaskPatch

	if p.Title != nil && ValidTitle(*p.Title) {
		title := *p.Title
		out.Title = &title
	}

	if p.Description != nil && *p.Description != "" && ValidDescription(*p.Description) {
		description := *p.Description
		out.Description = &description
	}

	if p.Category != nil && *p.Category != "" {
		category := *p.Category
		out.Category = &category
	}

	return out
}

// IsEmpty reports whether the patch carries no fields.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil
}

// Fields returns the patch as a field-name to value map using the JSON names.
// Stores and API responses share this representation.
func (p TaskPatch) Fields() map[string]string {
	fields := make(map[string]string, 3)
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Category != nil {
		fields["category"] = *p.Category
	}
	return fields
}

// Apply writes the patch onto t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
}
