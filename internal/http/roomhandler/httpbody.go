package roomhandler

type CreateRoomBody struct {
	Name        string `json:"name"        binding:"required,max=100" example:"Sunset puzzle"`
	Description string `json:"description" binding:"required,max=500" example:"A tricky 48 piece sunset"`
	Difficulty  string `json:"difficulty"  binding:"omitempty,oneof=easy medium hard expert" example:"medium"`
	MaxPlayers  int    `json:"maxPlayers"  binding:"omitempty,gte=2,lte=8" example:"4"`
	HostID      string `json:"hostId"      binding:"required" example:"player123"`
	ImageURL    string `json:"imageUrl"    binding:"required" example:"/media/abc.jpg"`
} // @name CreateRoomRequest

type JoinRoomBody struct {
	PlayerID string `json:"playerId" binding:"required" example:"player123"`
} // @name JoinRoomRequest

type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
} // @name SuccessResponse

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
} // @name ErrorResponse
