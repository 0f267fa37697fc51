package projectreq

// CreateProjectRequest represents the request to create a project
type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description,omitempty" binding:"max=500"`
}

// UpdateProjectRequest represents the request to update a project
type UpdateProjectRequest struct {
	Title       *string `json:"title,omitempty" binding:"omitempty,max=100"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=500"`
}
