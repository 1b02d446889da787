package repository

import (
	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/entity"
)

// PlayerRepository определяет методы для работы с ростером игроков
type PlayerRepository interface {
	Create(player *entity.Player) error
	GetByID(id string) (*entity.Player, error)
	// List возвращает игроков, отсортированных по фамилии/имени.
	// activeOnly=true отдает только действующий ростер (для киоска).
	List(activeOnly bool) ([]entity.Player, error)
	Update(player *entity.Player) error
	// SetActive точечно переключает флаг is_active (вывод из ростера без удаления)
	SetActive(playerID string, active bool) error
	Delete(id string) error
}
