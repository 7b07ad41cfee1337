// Package version holds the node version string reported by the /version
// endpoint and checked by clients for compatibility.
package version

// Version is the semantic version of this node build.
const Version = "1.0.0"
