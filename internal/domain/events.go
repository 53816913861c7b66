package domain

// EventType represents the type of search event
type EventType string

// Event types
const (
	EventEntryMatched     EventType = "EntryMatched"
	EventDirectoryEntered EventType = "DirectoryEntered"
	EventPermissionError  EventType = "PermissionError"
	EventOtherError       EventType = "OtherError"
	EventSearchCompleted  EventType = "SearchCompleted"
)

// SearchEvent is the interface for all traversal events
type SearchEvent interface {
	Type() EventType
}

// EntryMatchedEvent is emitted when an entry qualifies against the pattern
type EntryMatchedEvent struct {
	Path  string
	IsDir bool
}

func (e EntryMatchedEvent) Type() EventType { return EventEntryMatched }

// DirectoryEnteredEvent is emitted when a worker starts listing a directory
type DirectoryEnteredEvent struct {
	Path string
}

func (e DirectoryEnteredEvent) Type() EventType { return EventDirectoryEntered }

// PermissionErrorEvent is emitted when an entry or subtree cannot be read
// because of missing permissions
type PermissionErrorEvent struct {
	Path string
}

func (e PermissionErrorEvent) Type() EventType { return EventPermissionError }

// OtherErrorEvent is emitted for any non-permission I/O failure on an entry,
// e.g. a directory that vanished between discovery and listing
type OtherErrorEvent struct {
	Path string
	Err  error
}

func (e OtherErrorEvent) Type() EventType { return EventOtherError }

// SearchCompletedEvent is the terminal event of one search
type SearchCompletedEvent struct {
	Reason CompletionReason
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }
