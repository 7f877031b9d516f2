package playerhandler

type CreateSessionBody struct {
	DisplayName string `json:"displayName" binding:"omitempty,max=50" example:"Ann"`
} // @name CreateSessionRequest

type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
} // @name SuccessResponse

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
} // @name ErrorResponse
