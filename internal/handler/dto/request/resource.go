package request

type UpdateResourceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available maintenance reserved"`
}
