package core

// MemoryStore defines persistence + retrieval (search) for longer-lived
// tutoring context: weak topics, recent results, preferences. Implementations
// can back search with embeddings, keywords or any heuristic. Short method
// names align with the other *Store interfaces.
type MemoryStore interface {
	Get(sessionID string) (map[string]any, error)
	Put(sessionID string, delta map[string]any) error
	Search(sessionID string, query string, limit int) ([]SearchResult, error)
	Store(sessionID string, content string, metadata map[string]any) error
	Delete(sessionID string, memoryID string) error
}
