package models

// Tag represents a tag in the system. Tags have no ownership
// semantics; they only exist to be attached to tasks.
type Tag struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Title string `json:"title" gorm:"not null"`

	// Many-to-Many Relations
	Tasks []*Task `json:"tasks,omitempty" gorm:"many2many:task_tags"`
}
