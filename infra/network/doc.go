// Package network resolves solved networks from exports on disk, a SQLite
// database or memory. Every loader reports a missing network as (nil, nil).
package network
