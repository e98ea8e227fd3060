// Package probe implements a single HTTP reachability check against a
// provider URL. A probe succeeds when the server answers within the
// configured bounds with a status below 400; redirects are not followed.
package probe
