package config

import "path/filepath"

// Paths locates the installation files and sockets this package reads.
// Drivers take a Paths value explicitly; there is no global install
// root.
type Paths struct {
	// Root is the installation directory.
	Root string
	// Uid and Gid own uploaded files. Negative values leave ownership
	// untouched (useful in tests and unprivileged runs).
	Uid int
	Gid int
}

// DefaultPaths returns the standard installation layout.
func DefaultPaths() Paths {
	return Paths{Root: "/var/ossec", Uid: -1, Gid: -1}
}

// OssecConf is the main configuration file.
func (p Paths) OssecConf() string { return filepath.Join(p.Root, "etc", "ossec.conf") }

// SharedDir holds the per group shared configuration.
func (p Paths) SharedDir() string { return filepath.Join(p.Root, "etc", "shared") }

// GroupDir is the shared directory of one group.
func (p Paths) GroupDir(group string) string { return filepath.Join(p.SharedDir(), group) }

// SocketsDir holds the daemon request sockets.
func (p Paths) SocketsDir() string { return filepath.Join(p.Root, "queue", "sockets") }

// AuthdPass is the agent enrollment secret file.
func (p Paths) AuthdPass() string { return filepath.Join(p.Root, "etc", "authd.pass") }

// InternalOptions is the global internal options file.
func (p Paths) InternalOptions() string {
	return filepath.Join(p.Root, "etc", "internal_options.conf")
}

// LocalInternalOptions overrides InternalOptions when present.
func (p Paths) LocalInternalOptions() string {
	return filepath.Join(p.Root, "etc", "local_internal_options.conf")
}

// ValidatorBin is the external configuration syntax validator.
func (p Paths) ValidatorBin() string { return filepath.Join(p.Root, "bin", "verify-agent-conf") }

// TmpDir holds upload staging files.
func (p Paths) TmpDir() string { return filepath.Join(p.Root, "tmp") }
