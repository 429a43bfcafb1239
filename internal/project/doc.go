// Package project holds the persistent data model for animation projects
// and the registry that manages the in-memory collection.
//
// The registry is the single writer for the collection. Every mutation is
// applied in memory first and then written through to the collection store;
// a failed write is downgraded to a persistence warning so that captured
// frames are never lost to a disk error mid-session.
package project
