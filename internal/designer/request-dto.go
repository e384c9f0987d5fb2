package designer

import "seatly/internal/layout"

type CreateSessionRequest struct {
	LayoutType string             `json:"layout_type" binding:"required,oneof=theater concert stadium footballStadium basketballArena outdoor custom"`
	SeatingMap *layout.SeatingMap `json:"seating_map"`
}

type SetModeRequest struct {
	Mode string `json:"mode" binding:"required,oneof=select add-section add-venue-object"`
}

type ClickRequest struct {
	X float64 `json:"x" binding:"min=0"`
	Y float64 `json:"y" binding:"min=0"`
}

type AddObjectRequest struct {
	Type string `json:"type" binding:"required,min=1,max=64"`
}

type SelectRequest struct {
	Kind string `json:"kind" binding:"omitempty,oneof=section venueObject stage"`
	ID   string `json:"id"`
}

type StartDragRequest struct {
	Kind string  `json:"kind" binding:"required,oneof=section venueObject stage"`
	ID   string  `json:"id"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom" binding:"omitempty,gt=0"`
	PanX float64 `json:"pan_x"`
	PanY float64 `json:"pan_y"`
}

type DragMoveRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
