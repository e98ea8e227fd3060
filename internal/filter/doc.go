// Package filter implements the reachability filter: it probes every
// provider in input order, one at a time, and keeps exactly the records
// whose probe succeeded.
package filter
