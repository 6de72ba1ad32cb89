package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Keyer builds cache keys. Every key starts from the hash of the graph the
// entry was derived from.
type Keyer interface {
	// RouteKey addresses the best route between two logical locations
	// along one dimension.
	RouteKey(graphHash string, opts RouteKeyOpts) string

	// ArtifactKey addresses a rendered drawing of the graph.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// RouteKeyOpts identifies one route query.
type RouteKeyOpts struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Dimension string `json:"dimension"`
}

// ArtifactKeyOpts identifies one rendering of a graph.
type ArtifactKeyOpts struct {
	Format    string `json:"format"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	Dimension string `json:"dimension,omitempty"`
}

// DefaultKeyer hashes the graph hash together with the options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RouteKey returns "route:<hash>".
func (DefaultKeyer) RouteKey(graphHash string, opts RouteKeyOpts) string {
	return hashKey("route", graphHash, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

// hashKey builds "prefix:sha256(json(parts))".
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data. Graph hashes use it too, so that a
// route key changes whenever the rendered graph does.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
