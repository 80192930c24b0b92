// Package collect enumerates the model declarations of a universe and
// resolves their identity: key, display name, group and description.
package collect
