package models

// WebDAVConfig is the raw, host-supplied remote configuration. It is read
// fresh for every remote operation.
type WebDAVConfig struct {
	URL      string
	Username string
	Password string
}

// SessionState is the slice of a session a sync plan is built from.
type SessionState struct {
	ID             string
	Date           int64
	LastEditedTime int64
}

// SyncPlan lists the session ids a full sync has to move in each direction.
type SyncPlan struct {
	// Download holds ids whose remote copy is newer or missing locally.
	Download []string

	// Upload holds ids whose local copy is newer or missing remotely.
	Upload []string
}

// Empty reports whether the plan has nothing to do.
func (p SyncPlan) Empty() bool {
	return len(p.Download) == 0 && len(p.Upload) == 0
}

// Event names broadcast after local mutations.
const (
	EventSaveSession   = "saveSession"
	EventUpdateSession = "updateSession"
	EventDeleteSession = "deleteSession"
	EventDeleteAll     = "deleteAll"
)

// Event is a fire-and-forget notification about a local mutation.
type Event struct {
	Name string `json:"message"`
	ID   string `json:"id,omitempty"`
}
