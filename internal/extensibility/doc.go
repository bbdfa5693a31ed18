// Package extensibility provides pluggable pieces around core machines:
// logging hooks and ordered buffering of platform animation events.
package extensibility
