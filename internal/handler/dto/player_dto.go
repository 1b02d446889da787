package dto

import (
	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/entity"
)

// PlayerRequest — запрос создания/обновления игрока
type PlayerRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email"`
	IsActive  *bool  `json:"isActive"`
}

// PlayerResponse — игрок в ответе API
type PlayerResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	IsActive  bool   `json:"isActive"`
}

// ToEntity преобразует запрос в доменную сущность
func (r *PlayerRequest) ToEntity() *entity.Player {
	player := &entity.Player{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		IsActive:  true,
	}
	if r.IsActive != nil {
		player.IsActive = *r.IsActive
	}
	return player
}

// NewPlayerResponse собирает DTO из доменной сущности
func NewPlayerResponse(player *entity.Player) PlayerResponse {
	return PlayerResponse{
		ID:        player.ID,
		FirstName: player.FirstName,
		LastName:  player.LastName,
		Email:     player.Email,
		IsActive:  player.IsActive,
	}
}
