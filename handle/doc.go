// Package handle manages the lifetime of native resources exposed to a host.
//
// A [Handle] owns exactly one resource and moves through two states, Live and
// Released. The transition happens once: [Handle.Release] runs the release
// routine the first time and is a no-op afterwards. Every access after
// release fails with [ErrUseAfterRelease].
//
// # Finalization
//
// Hosts with a garbage collector may drop a handle without releasing it.
// [Handle.Finalize] binds the release routine to collection of a host-side
// wrapper via runtime.AddCleanup, so explicit release and collection converge
// on the same routine. Finalization timing is not guaranteed; explicit
// release remains the primary contract.
//
// # Host Tables
//
// Hosts that cannot hold Go pointers address handles by opaque string IDs.
// [Table] issues IDs, resolves them with a kind check, and forgets them on
// release.
//
// # Thread Safety
//
// The Live to Released transition is atomic, so a finalizer racing an
// explicit release frees the resource once. Operations on the wrapped
// resource are not serialized; callers must not use one handle from several
// goroutines at once.
package handle
