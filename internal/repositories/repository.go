package repositories

import "context"

// Storage aggregates every entity repository. The backend (postgres or
// in-memory) is selected once at process start and never swapped at
// runtime.
type Storage interface {
	User() UserRepository
	Announcement() AnnouncementRepository
	Assignment() AssignmentRepository
	Material() MaterialRepository
	Event() EventRepository

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}
