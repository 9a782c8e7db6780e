package eventlog

import (
	"context"
	"fmt"
	"time"
)

// Repository reads and writes lifecycle_events in ClickHouse
type Repository struct {
	ch *Client
}

// NewRepository creates a new event log Repository
func NewRepository(ch *Client) *Repository {
	return &Repository{ch: ch}
}

// EnsureSchema creates the lifecycle_events table when it does not exist.
// Rows expire after 90 days; the engine never reads them back for its own
// decisions, this is an analytics sink only.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	ddl := `CREATE TABLE IF NOT EXISTS lifecycle_events (
		event_id       String,
		occurred_at    DateTime,
		date_partition Date MATERIALIZED toDate(occurred_at),
		topic          String,
		space_id       String,
		environment_id UInt64,
		entry_id       UInt64,
		content_type   String,
		status         String,
		version        UInt32,
		actor_id       UInt64,
		action_id      String,
		detail         String
	) ENGINE = MergeTree
	PARTITION BY toYYYYMM(occurred_at)
	ORDER BY (space_id, occurred_at)
	TTL occurred_at + INTERVAL 90 DAY`

	if err := r.ch.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("eventlog: create table failed: %w", err)
	}
	return nil
}

// InsertEvents writes a batch of events
func (r *Repository) InsertEvents(ctx context.Context, events []LifecycleEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch, err := r.ch.PrepareBatch(ctx, `INSERT INTO lifecycle_events
		(event_id, occurred_at, topic, space_id, environment_id, entry_id, content_type, status, version, actor_id, action_id, detail)`)
	if err != nil {
		return fmt.Errorf("eventlog: prepare batch failed: %w", err)
	}

	for _, e := range events {
		if err := batch.Append(
			e.EventID, e.OccurredAt, e.Topic, e.SpaceID, e.EnvironmentID,
			e.EntryID, e.ContentType, e.Status, e.Version, e.ActorID,
			e.ActionID, e.Detail,
		); err != nil {
			return fmt.Errorf("eventlog: batch append failed: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("eventlog: batch send failed: %w", err)
	}
	return nil
}

// GetStats returns summary statistics, optionally scoped to one space
func (r *Repository) GetStats(ctx context.Context, spaceID string) (*Stats, error) {
	today := time.Now().Format("2006-01-02")
	weekAgo := time.Now().AddDate(0, 0, -7).Format("2006-01-02")

	where := "1=1"
	var scope []interface{}
	if spaceID != "" {
		where = "space_id = ?"
		scope = append(scope, spaceID)
	}

	query := fmt.Sprintf(`SELECT
		countIf(date_partition = toDate(?)) as today_count,
		countIf(date_partition >= toDate(?)) as week_count,
		countIf(topic = 'entry.after_publish' AND date_partition >= toDate(?)) as week_publishes,
		uniqIf(space_id, date_partition >= toDate(?)) as active_spaces
		FROM lifecycle_events WHERE %s`, where)

	args := append([]interface{}{today, weekAgo, weekAgo, weekAgo}, scope...)

	var s Stats
	row := r.ch.QueryRow(ctx, query, args...)
	if err := row.Scan(&s.TodayCount, &s.WeekCount, &s.WeekPublishes, &s.ActiveSpaces); err != nil {
		return nil, fmt.Errorf("eventlog: stats query failed: %w", err)
	}

	topQuery := fmt.Sprintf(`SELECT topic, count() as cnt FROM lifecycle_events
		WHERE date_partition >= toDate(?) AND %s
		GROUP BY topic ORDER BY cnt DESC LIMIT 1`, where)
	topArgs := append([]interface{}{weekAgo}, scope...)
	topRow := r.ch.QueryRow(ctx, topQuery, topArgs...)
	_ = topRow.Scan(&s.TopTopic, &s.TopTopicCount)

	return &s, nil
}

// GetTimeseries returns event counts bucketed by hour
func (r *Repository) GetTimeseries(ctx context.Context, spaceID, dateFrom, dateTo string) ([]TimeBucket, error) {
	where := "date_partition >= toDate(?) AND date_partition <= toDate(?)"
	args := []interface{}{dateFrom, dateTo}
	if spaceID != "" {
		where += " AND space_id = ?"
		args = append(args, spaceID)
	}

	query := fmt.Sprintf(`SELECT toStartOfHour(occurred_at) as bucket, count() as count
		FROM lifecycle_events WHERE %s
		GROUP BY bucket ORDER BY bucket`, where)

	rows, err := r.ch.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("eventlog: timeseries query failed: %w", err)
	}
	defer rows.Close()

	var buckets []TimeBucket
	for rows.Next() {
		var b TimeBucket
		if err := rows.Scan(&b.Bucket, &b.Count); err != nil {
			return nil, fmt.Errorf("eventlog: scan failed: %w", err)
		}
		buckets = append(buckets, b)
	}
	return buckets, nil
}

// GetRecent returns the latest events, newest first. entryID narrows the
// result to one entry's history when non-zero.
func (r *Repository) GetRecent(ctx context.Context, spaceID string, entryID uint64, limit int) ([]LifecycleEvent, error) {
	if limit < 1 || limit > 500 {
		limit = 50
	}

	where := "1=1"
	var args []interface{}
	if spaceID != "" {
		where += " AND space_id = ?"
		args = append(args, spaceID)
	}
	if entryID != 0 {
		where += " AND entry_id = ?"
		args = append(args, entryID)
	}

	query := fmt.Sprintf(`SELECT event_id, occurred_at, topic, space_id, environment_id, entry_id, content_type, status, version, actor_id, action_id, detail
		FROM lifecycle_events WHERE %s
		ORDER BY occurred_at DESC LIMIT %d`, where, limit)

	rows, err := r.ch.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("eventlog: recent query failed: %w", err)
	}
	defer rows.Close()

	var events []LifecycleEvent
	for rows.Next() {
		var e LifecycleEvent
		if err := rows.Scan(&e.EventID, &e.OccurredAt, &e.Topic, &e.SpaceID, &e.EnvironmentID,
			&e.EntryID, &e.ContentType, &e.Status, &e.Version, &e.ActorID,
			&e.ActionID, &e.Detail); err != nil {
			return nil, fmt.Errorf("eventlog: scan failed: %w", err)
		}
		events = append(events, e)
	}
	return events, nil
}

// GetTopicCounts returns event volume per topic over a date range
func (r *Repository) GetTopicCounts(ctx context.Context, spaceID, dateFrom, dateTo string) ([]TopicCount, error) {
	where := "date_partition >= toDate(?) AND date_partition <= toDate(?)"
	args := []interface{}{dateFrom, dateTo}
	if spaceID != "" {
		where += " AND space_id = ?"
		args = append(args, spaceID)
	}

	query := fmt.Sprintf(`SELECT topic, count() as count
		FROM lifecycle_events WHERE %s
		GROUP BY topic ORDER BY count DESC`, where)

	rows, err := r.ch.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("eventlog: topic counts query failed: %w", err)
	}
	defer rows.Close()

	var counts []TopicCount
	for rows.Next() {
		var tc TopicCount
		if err := rows.Scan(&tc.Topic, &tc.Count); err != nil {
			return nil, fmt.Errorf("eventlog: scan failed: %w", err)
		}
		counts = append(counts, tc)
	}
	return counts, nil
}
