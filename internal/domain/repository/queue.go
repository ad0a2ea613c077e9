package repository

import "context"

// CleanupTask names blobs that may have been orphaned by a failed metadata
// write. The sweeper deletes them; deletion is idempotent so a task that
// raced a successful synchronous compensation is harmless.
type CleanupTask struct {
	AssetID     int64    `json:"asset_id"`
	StoredNames []string `json:"stored_names"`
	Reason      string   `json:"reason"`
	RetryCount  int      `json:"retry_count"`
}

// CleanupQueue defines the interface for the orphan-blob cleanup queue.
// Implementations should be provided by the infrastructure layer (e.g., RabbitMQ).
type CleanupQueue interface {
	// PublishCleanupTask sends a cleanup task to the queue.
	// Used by the API server when an update leaves candidate orphans behind.
	PublishCleanupTask(ctx context.Context, task CleanupTask) error

	// ConsumeCleanupTasks starts consuming cleanup tasks from the queue.
	// The handler function is called for each received task.
	// Used by the sweeper service.
	ConsumeCleanupTasks(ctx context.Context, handler func(task CleanupTask) error) error

	// Close gracefully closes the connection to the message queue.
	Close() error
}
