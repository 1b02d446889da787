package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/entity"
	apperrors "github.com/aleksacoach93b/wellness-monitor-sub000/internal/pkg/errors"
)

// PlayerRepo реализует repository.PlayerRepository
type PlayerRepo struct {
	db *gorm.DB
}

// NewPlayerRepo создает новый репозиторий игроков
func NewPlayerRepo(db *gorm.DB) *PlayerRepo {
	return &PlayerRepo{db: db}
}

// Create создает нового игрока
func (r *PlayerRepo) Create(player *entity.Player) error {
	if err := r.db.Create(player).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: player email %q already exists", apperrors.ErrConflict, player.Email)
		}
		return err
	}
	return nil
}

// GetByID возвращает игрока по ID
func (r *PlayerRepo) GetByID(id string) (*entity.Player, error) {
	var player entity.Player
	err := r.db.First(&player, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &player, nil
}

// List возвращает игроков, отсортированных по фамилии/имени
func (r *PlayerRepo) List(activeOnly bool) ([]entity.Player, error) {
	var players []entity.Player
	query := r.db.Order("last_name, first_name, id")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

// Update обновляет данные игрока
func (r *PlayerRepo) Update(player *entity.Player) error {
	if err := r.db.Save(player).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: player email %q already exists", apperrors.ErrConflict, player.Email)
		}
		return err
	}
	return nil
}

// SetActive точечно переключает флаг is_active
func (r *PlayerRepo) SetActive(playerID string, active bool) error {
	result := r.db.Model(&entity.Player{}).
		Where("id = ?", playerID).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete удаляет игрока из ростера.
// Его исторические Response остаются в базе, но перестают попадать в экспорт.
func (r *PlayerRepo) Delete(id string) error {
	result := r.db.Delete(&entity.Player{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// isUniqueViolation проверяет Postgres unique violation (23505) для pgconn и lib/pq драйверов
func isUniqueViolation(err error) bool {
	// pgx/v5 driver (pgconn.PgError)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// lib/pq driver
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}
