// Package loader fetches template bodies by name and caches them in a
// store.Store. A template named NAME is read from RootPath+NAME+FileSuffix
// through a Reader, which may be the local filesystem or one of the remote
// backends in the configmap, github and gitlab subpackages.
//
// Each name is read at most once per Loader: concurrent misses share one
// read, and a successful read is cached for the lifetime of the store.
// Failed reads are not cached.
package loader
