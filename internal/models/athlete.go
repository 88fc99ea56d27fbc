package models

import "time"

// Athlete представляет атлета (подопечного тренера)
type Athlete struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Surname   string     `json:"surname"`
	Phone     string     `json:"phone"`
	BirthDate string     `json:"birth_date"`
	Goal      string     `json:"goal"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// GoalHistoryEntry запись истории целей атлета
type GoalHistoryEntry struct {
	ID        int       `json:"id"`
	AthleteID int       `json:"athlete_id"`
	Goal      string    `json:"goal"`
	CreatedAt time.Time `json:"created_at"`
}
