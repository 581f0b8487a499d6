package player

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlayerRepository defines the interface for roster data operations
type PlayerRepository interface {
	// Player operations
	CreatePlayer(player *Player) error
	GetPlayerByID(id uint) (*Player, error)
	GetPlayerByName(name string) (*Player, error)
	GetAllPlayers() ([]Player, error)
	CountPlayers() (int64, error)
	UpdatePlayer(player *Player) error
	DeletePlayer(id uint) error

	// Current-user designation
	SaveCurrentUser(name string) error
	LoadCurrentUser() (string, error)
	ClearCurrentUser() error
}

type playerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository creates a new instance of PlayerRepository
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

// --- Player Operations ---

func (r *playerRepository) CreatePlayer(player *Player) error {
	return r.db.Create(player).Error
}

func (r *playerRepository) GetPlayerByID(id uint) (*Player, error) {
	var player Player
	if err := r.db.First(&player, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &player, nil
}

func (r *playerRepository) GetPlayerByName(name string) (*Player, error) {
	var player Player
	if err := r.db.Where("name = ?", name).First(&player).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &player, nil
}

func (r *playerRepository) GetAllPlayers() ([]Player, error) {
	var players []Player
	if err := r.db.Order("created_at asc").Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

func (r *playerRepository) CountPlayers() (int64, error) {
	var count int64
	if err := r.db.Model(&Player{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *playerRepository) UpdatePlayer(player *Player) error {
	return r.db.Save(player).Error
}

func (r *playerRepository) DeletePlayer(id uint) error {
	return r.db.Delete(&Player{}, id).Error
}

// --- Current-User Operations ---

func (r *playerRepository) SaveCurrentUser(name string) error {
	setting := Setting{Key: SettingCurrentUser, Value: name}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&setting).Error
}

func (r *playerRepository) LoadCurrentUser() (string, error) {
	var setting Setting
	if err := r.db.First(&setting, "key = ?", SettingCurrentUser).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return setting.Value, nil
}

func (r *playerRepository) ClearCurrentUser() error {
	return r.db.Delete(&Setting{}, "key = ?", SettingCurrentUser).Error
}
