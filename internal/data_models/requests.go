package dto

// Request bodies for the HTTP surface. Dates travel as "2006-01-02"
// strings and are parsed by the validators.

type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	AssigneeID  *string  `json:"assignee_id"`
	Priority    string   `json:"priority"`
	Status      string   `json:"status"`
	DueDate     string   `json:"due_date"`
	Tags        []string `json:"tags"`
}

// UpdateTaskRequest is a partial patch; absent fields stay untouched.
// An explicit empty assignee_id clears the assignment.
type UpdateTaskRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	AssigneeID  *string  `json:"assignee_id"`
	Priority    *string  `json:"priority"`
	Status      *string  `json:"status"`
	DueDate     *string  `json:"due_date"`
	Tags        []string `json:"tags"`
}

type CreateCommentRequest struct {
	Content  string  `json:"content"`
	ParentID *string `json:"parent_id"`
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
}

type CreateProfileRequest struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Timezone string `json:"timezone"`
}

type SetRoleRequest struct {
	Role string `json:"role"`
}

type UpdateNomenclatureRequest struct {
	Prefix    string `json:"prefix"`
	Separator string `json:"separator"`
	Padding   int    `json:"padding"`
}
