package model

import "time"

// IST is the fixed civil zone every score timestamp is rendered in.
var IST = time.FixedZone("IST", 5*60*60+30*60)

// TimestampLayout is ISO-8601 with microseconds and a numeric offset.
const TimestampLayout = "2006-01-02T15:04:05.000000-07:00"

// Score rows are written once and never updated.
type Score struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	WPM       float64   `gorm:"column:wpm;not null" json:"wpm"`
	Accuracy  float64   `gorm:"column:accuracy;not null" json:"accuracy"`
	Duration  int       `gorm:"column:duration;not null;index" json:"duration"`
	Timestamp time.Time `gorm:"column:timestamp;type:datetime(6);not null;index" json:"timestamp"`
}

// ScoreEntry is a score joined with its owner's username.
type ScoreEntry struct {
	ID        uint      `gorm:"column:id" json:"id"`
	UserID    uint      `gorm:"column:user_id" json:"-"`
	WPM       float64   `gorm:"column:wpm" json:"wpm"`
	Accuracy  float64   `gorm:"column:accuracy" json:"accuracy"`
	Duration  int       `gorm:"column:duration" json:"duration"`
	Timestamp time.Time `gorm:"column:timestamp" json:"timestamp"`
	Username  string    `gorm:"column:username" json:"username"`
}

// FormatTimestamp renders t in IST, e.g. 2024-05-01T18:30:00.000000+05:30.
func FormatTimestamp(t time.Time) string {
	return t.In(IST).Format(TimestampLayout)
}

// ScoreRecordedEvent is published after a score row has been committed.
type ScoreRecordedEvent struct {
	ScoreID   uint    `json:"score_id"`
	UserID    uint    `json:"user_id"`
	Username  string  `json:"username"`
	WPM       float64 `json:"wpm"`
	Accuracy  float64 `json:"accuracy"`
	Duration  int     `json:"duration"`
	Timestamp string  `json:"timestamp"`
}

func NewScoreRecordedEvent(score *Score, username string) ScoreRecordedEvent {
	return ScoreRecordedEvent{
		ScoreID:   score.ID,
		UserID:    score.UserID,
		Username:  username,
		WPM:       score.WPM,
		Accuracy:  score.Accuracy,
		Duration:  score.Duration,
		Timestamp: FormatTimestamp(score.Timestamp),
	}
}
