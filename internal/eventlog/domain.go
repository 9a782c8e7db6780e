package eventlog

import "time"

// LifecycleEvent is one committed transition as stored in ClickHouse
type LifecycleEvent struct {
	EventID       string    `json:"event_id"`
	OccurredAt    time.Time `json:"occurred_at"`
	Topic         string    `json:"topic"`
	SpaceID       string    `json:"space_id"`
	EnvironmentID uint64    `json:"environment_id"`
	EntryID       uint64    `json:"entry_id"`
	ContentType   string    `json:"content_type"`
	Status        string    `json:"status"`
	Version       uint32    `json:"version"`
	ActorID       uint64    `json:"actor_id"`
	ActionID      string    `json:"action_id,omitempty"`
	Detail        string    `json:"detail,omitempty"`
}

// Stats summarizes recent lifecycle activity
type Stats struct {
	TodayCount    uint64 `json:"today_count"`
	WeekCount     uint64 `json:"week_count"`
	WeekPublishes uint64 `json:"week_publishes"`
	ActiveSpaces  uint64 `json:"active_spaces"`
	TopTopic      string `json:"top_topic,omitempty"`
	TopTopicCount uint64 `json:"top_topic_count,omitempty"`
}

// TimeBucket is one point of an hourly activity series
type TimeBucket struct {
	Bucket time.Time `json:"bucket"`
	Count  uint64    `json:"count"`
}

// TopicCount is the event volume for one topic
type TopicCount struct {
	Topic string `json:"topic"`
	Count uint64 `json:"count"`
}
