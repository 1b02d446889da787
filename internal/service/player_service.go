package service

import (
	"log"
	"strings"

	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/entity"
	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/repository"
)

// PlayerService реализует CRUD ростера игроков
type PlayerService struct {
	playerRepo repository.PlayerRepository
}

// NewPlayerService создает новый сервис игроков
func NewPlayerService(playerRepo repository.PlayerRepository) *PlayerService {
	return &PlayerService{playerRepo: playerRepo}
}

// Create добавляет игрока в ростер
func (s *PlayerService) Create(player *entity.Player) error {
	if err := validatePlayer(player); err != nil {
		return err
	}
	if err := s.playerRepo.Create(player); err != nil {
		return err
	}
	log.Printf("[PlayerService] Добавлен игрок %s (%s)", player.ID, player.FullName())
	return nil
}

// GetByID возвращает игрока по ID
func (s *PlayerService) GetByID(id string) (*entity.Player, error) {
	return s.playerRepo.GetByID(id)
}

// List возвращает ростер игроков
func (s *PlayerService) List(activeOnly bool) ([]entity.Player, error) {
	return s.playerRepo.List(activeOnly)
}

// Update обновляет данные игрока
func (s *PlayerService) Update(player *entity.Player) error {
	if err := validatePlayer(player); err != nil {
		return err
	}
	if _, err := s.playerRepo.GetByID(player.ID); err != nil {
		return err
	}
	return s.playerRepo.Update(player)
}

// SetActive переключает флаг активности игрока
func (s *PlayerService) SetActive(playerID string, active bool) error {
	return s.playerRepo.SetActive(playerID, active)
}

// Delete удаляет игрока из ростера
func (s *PlayerService) Delete(id string) error {
	if err := s.playerRepo.Delete(id); err != nil {
		return err
	}
	log.Printf("[PlayerService] Удален игрок %s", id)
	return nil
}

// validatePlayer проверяет форму данных игрока
func validatePlayer(player *entity.Player) error {
	var fields []FieldError
	if strings.TrimSpace(player.FirstName) == "" {
		fields = append(fields, FieldError{Field: "firstName", Message: "is required"})
	}
	if strings.TrimSpace(player.LastName) == "" {
		fields = append(fields, FieldError{Field: "lastName", Message: "is required"})
	}
	if player.Email != "" && !strings.Contains(player.Email, "@") {
		fields = append(fields, FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if len(fields) > 0 {
		return newValidationError(fields...)
	}
	return nil
}
