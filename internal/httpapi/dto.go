package httpapi

import "dogworld-server/internal/model"

type mapSummaryDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type roadDTO struct {
	X0 float64  `json:"x0"`
	Y0 float64  `json:"y0"`
	X1 *float64 `json:"x1,omitempty"`
	Y1 *float64 `json:"y1,omitempty"`
}

type buildingDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type officeDTO struct {
	ID      string  `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

type lootTypeDTO struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type mapFullDTO struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Roads     []roadDTO     `json:"roads"`
	Buildings []buildingDTO `json:"buildings"`
	Offices   []officeDTO   `json:"offices"`
	LootTypes []lootTypeDTO `json:"lootTypes"`
}

func mapToDTO(m *model.Map, kinds []model.LootKind) mapFullDTO {
	dto := mapFullDTO{ID: m.ID, Name: m.Name}
	for _, r := range m.Roads() {
		if r.Orientation == model.Horizontal {
			x1 := r.End.X
			dto.Roads = append(dto.Roads, roadDTO{X0: r.Start.X, Y0: r.Start.Y, X1: &x1})
		} else {
			y1 := r.End.Y
			dto.Roads = append(dto.Roads, roadDTO{X0: r.Start.X, Y0: r.Start.Y, Y1: &y1})
		}
	}
	for _, b := range m.Buildings() {
		dto.Buildings = append(dto.Buildings, buildingDTO{X: b.Rect.Position.X, Y: b.Rect.Position.Y, W: b.Rect.Size.Width, H: b.Rect.Size.Height})
	}
	for _, o := range m.Offices() {
		dto.Offices = append(dto.Offices, officeDTO{ID: o.ID, X: o.Position.X, Y: o.Position.Y, OffsetX: o.Offset.DX, OffsetY: o.Offset.DY})
	}
	for _, k := range kinds {
		dto.LootTypes = append(dto.LootTypes, lootTypeDTO{Name: k.Name, Value: k.Value})
	}
	return dto
}

type joinRequest struct {
	UserName string `json:"userName"`
	MapID    string `json:"mapId"`
}

type joinResponse struct {
	AuthToken string `json:"authToken"`
	PlayerID  uint64 `json:"playerId"`
}

type playerSummaryDTO struct {
	Name string `json:"name"`
}

type bagItemDTO struct {
	ID    uint64 `json:"id"`
	Type  int    `json:"type"`
	Value int    `json:"value"`
}

type playerStateDTO struct {
	Pos   [2]float64   `json:"pos"`
	Speed [2]float64   `json:"speed"`
	Dir   string       `json:"dir"`
	Bag   []bagItemDTO `json:"bag"`
	Score uint64       `json:"score"`
}

type lootStateDTO struct {
	Type int        `json:"type"`
	Pos  [2]float64 `json:"pos"`
}

type stateResponse struct {
	Players     map[string]playerStateDTO `json:"players"`
	LostObjects map[string]lootStateDTO   `json:"lostObjects"`
}

type actionRequest struct {
	Move string `json:"move"`
}

type tickRequest struct {
	TimeDelta int64 `json:"timeDelta"`
}
